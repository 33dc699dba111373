package handlers

import (
	"net/http"

	"filevault/utils"

	"github.com/gin-gonic/gin"
)

// CreateViewHandle 为文件创建临时预览令牌
func CreateViewHandle(c *gin.Context) {
	userID := c.GetUint("user_id")
	fileID := c.Param("id")

	out, err := getServices().View.CreateHandle(c.Request.Context(), userID, fileID)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, out)
}

// ViewFile 通过令牌读取文件内容，无需认证头，令牌本身即凭证
func ViewFile(c *gin.Context) {
	token := c.Param("token")

	out, err := getServices().View.ResolveHandle(c.Request.Context(), token)
	if respondServiceError(c, err) {
		return
	}

	c.Header("Content-Disposition", "inline")
	c.Data(http.StatusOK, out.MimeType, out.Data)
}

// ReleaseViewHandle 主动释放预览令牌
func ReleaseViewHandle(c *gin.Context) {
	token := c.Param("token")

	if err := getServices().View.ReleaseHandle(c.Request.Context(), token); respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "预览令牌已释放", nil)
}
