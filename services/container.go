package services

import (
	"filevault/config"
	"filevault/repositories"
)

type Container struct {
	Auth      AuthService
	User      UserService
	File      FileService
	Lifecycle LifecycleService
	View      ViewService
	Storage   ObjectStorageService
}

func NewContainer(repos repositories.Container) *Container {
	var storage ObjectStorageService
	if config.AppConfig.Storage.Mode == "s3" {
		storage = NewObjectStorageService(&config.AppConfig.Storage.S3)
	}

	return &Container{
		Auth:      NewAuthService(repos.Users),
		User:      NewUserService(repos.Users),
		File:      NewFileService(repos.TxManager, repos.Users, repos.Files, storage),
		Lifecycle: NewLifecycleService(repos.TxManager, repos.Users, repos.Files),
		View:      NewViewService(repos.Files, repos.ViewTokens),
		Storage:   storage,
	}
}
