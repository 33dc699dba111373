package handlers

import (
	"net/http"

	"filevault/services"
	"filevault/utils"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := getServices().Auth.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Nickname: req.Nickname,
		Email:    req.Email,
	})
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, user)
}

func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := getServices().Auth.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, out)
}

func GetProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	out, err := getServices().Auth.GetProfile(c.Request.Context(), userID)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, out)
}
