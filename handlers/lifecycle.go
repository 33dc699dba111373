package handlers

import (
	"filevault/utils"

	"github.com/gin-gonic/gin"
)

// FavoriteFile 收藏文件。重复收藏不视为错误，返回提示即可。
func FavoriteFile(c *gin.Context) {
	userID := c.GetUint("user_id")
	fileID := c.Param("id")

	out, err := getServices().Lifecycle.Favorite(c.Request.Context(), userID, fileID)
	if respondServiceError(c, err) {
		return
	}

	if out.Already {
		utils.SuccessWithMessage(c, "文件已在收藏中", out.File)
		return
	}
	utils.SuccessWithMessage(c, "收藏成功", out.File)
}

// UnfavoriteFile 取消收藏
func UnfavoriteFile(c *gin.Context) {
	userID := c.GetUint("user_id")
	fileID := c.Param("id")

	out, err := getServices().Lifecycle.Unfavorite(c.Request.Context(), userID, fileID)
	if respondServiceError(c, err) {
		return
	}

	if out.Already {
		utils.SuccessWithMessage(c, "文件未在收藏中", out.File)
		return
	}
	utils.SuccessWithMessage(c, "已取消收藏", out.File)
}

// DeleteFile 删除文件（移入回收站，可恢复）
func DeleteFile(c *gin.Context) {
	userID := c.GetUint("user_id")
	fileID := c.Param("id")

	file, err := getServices().Lifecycle.Delete(c.Request.Context(), userID, fileID)
	if respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "文件已移入回收站", file)
}

// RestoreFile 从回收站恢复文件
func RestoreFile(c *gin.Context) {
	userID := c.GetUint("user_id")
	fileID := c.Param("id")

	file, err := getServices().Lifecycle.Restore(c.Request.Context(), userID, fileID)
	if respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "恢复成功", file)
}

// PermanentDeleteFile 永久删除，不可恢复
func PermanentDeleteFile(c *gin.Context) {
	userID := c.GetUint("user_id")
	fileID := c.Param("id")

	if err := getServices().Lifecycle.PermanentDelete(c.Request.Context(), userID, fileID); respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "永久删除成功", nil)
}
