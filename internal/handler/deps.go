package handler

import (
	"quizduel/internal/app/arena"
	"quizduel/internal/app/storage"
	"quizduel/internal/app/store"
	"quizduel/internal/configs"
)

type AppDeps struct {
	Hub     *arena.Hub
	Config  *configs.AppConfig
	Store   store.Store
	Backups storage.BackupService
}
