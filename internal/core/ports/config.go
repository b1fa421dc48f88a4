package ports

import "go.trai.ch/lingo/internal/core/domain"

// SettingsLoader loads tool settings for a project.
//
//go:generate mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type SettingsLoader interface {
	Load(root string) (domain.Settings, error)
}
