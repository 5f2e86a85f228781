package logic

import "stockhub/internal/domain"

// OptionStore provides access to the option lists loaded per source
type OptionStore interface {
	GetOptions(source domain.Source) []domain.Option
	GetAllOptions() map[domain.Source][]domain.Option
	SetOptions(source domain.Source, options []domain.Option)
	RemoveOptions(source domain.Source)
	IsFallback(source domain.Source) bool
	MarkFallback(source domain.Source, fallback bool)
}
