package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"filevault/config"
	"filevault/services"
	"filevault/utils"

	"github.com/gin-gonic/gin"
)

type createFileRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
	// Data is the base64 data-URL payload (database storage mode).
	Data string `json:"data"`
	// StorageKey + Size replace Data in s3 storage mode.
	StorageKey string `json:"storage_key"`
	Size       int64  `json:"size"`
}

// ListFiles 获取文件列表（支持分页），status 取 active/favorite/trash，search 为名称子串过滤
func ListFiles(c *gin.Context) {
	userID := c.GetUint("user_id")
	statusFilter := c.DefaultQuery("status", "active")
	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))

	out, err := getServices().File.List(c.Request.Context(), userID, statusFilter, search, page, pageSize)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, out)
}

// UploadFile 上传文件（内容随请求体以 base64 data-URL 形式提交）
func UploadFile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req createFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求体格式错误")
		return
	}

	file, err := getServices().File.Create(c.Request.Context(), userID, services.CreateFileInput{
		Name:       req.Name,
		Type:       req.Type,
		Data:       req.Data,
		StorageKey: req.StorageKey,
		FileSize:   req.Size,
	})
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, file)
}

func GetFile(c *gin.Context) {
	userID := c.GetUint("user_id")
	fileID := c.Param("id")

	file, err := getServices().File.Get(c.Request.Context(), userID, fileID)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, file)
}

// DownloadFile 下载文件；s3 模式返回预签名下载链接
func DownloadFile(c *gin.Context) {
	userID := c.GetUint("user_id")
	fileID := c.Param("id")

	out, err := getServices().File.Download(c.Request.Context(), userID, fileID)
	if respondServiceError(c, err) {
		return
	}

	if out.URL != "" {
		utils.Success(c, gin.H{"download_url": out.URL, "name": out.Name, "type": out.MimeType})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Name))
	c.Data(http.StatusOK, out.MimeType, out.Data)
}

func GetThumbnail(c *gin.Context) {
	userID := c.GetUint("user_id")
	fileID := c.Param("id")

	thumb, err := getServices().File.Thumbnail(c.Request.Context(), userID, fileID)
	if respondServiceError(c, err) {
		return
	}

	c.Data(http.StatusOK, "image/jpeg", thumb)
}

// CreateUploadURL 生成对象存储预签名上传链接（仅 s3 模式）
func CreateUploadURL(c *gin.Context) {
	if config.AppConfig.Storage.Mode != "s3" {
		utils.Error(c, http.StatusBadRequest, "当前存储模式不支持预签名上传")
		return
	}

	out, err := getServices().Storage.PresignUpload(c.Request.Context())
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, out)
}
