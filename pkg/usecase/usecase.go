package usecase

import (
	"github.com/charter-lab/charterforge/pkg/domain/interfaces"
	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/service/risk"
	"github.com/charter-lab/charterforge/pkg/service/suggest"
)

type UseCases struct {
	repo interfaces.Repository

	engine    *risk.Engine
	archive   interfaces.Archive
	renderer  interfaces.Renderer
	exporter  interfaces.Exporter
	notifier  Notifier
	suggester *suggest.Suggester

	Risk     *RiskUseCase
	Clause   *ClauseUseCase
	Contract *ContractUseCase
	Auth     *AuthUseCase
}

type Option func(*UseCases)

// WithRiskCategories sets the initial risk category configuration
func WithRiskCategories(categories []model.RiskCategory) Option {
	return func(uc *UseCases) {
		uc.engine = risk.New(categories)
	}
}

// WithArchive sets the snapshot archive backend
func WithArchive(archive interfaces.Archive) Option {
	return func(uc *UseCases) {
		uc.archive = archive
	}
}

// WithRenderer sets the contract HTML renderer
func WithRenderer(renderer interfaces.Renderer) Option {
	return func(uc *UseCases) {
		uc.renderer = renderer
	}
}

// WithExporter sets the contract PDF exporter
func WithExporter(exporter interfaces.Exporter) Option {
	return func(uc *UseCases) {
		uc.exporter = exporter
	}
}

// WithNotifier sets the contract notification service
func WithNotifier(notifier Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

// WithSuggester sets the clause suggestion service
func WithSuggester(suggester *suggest.Suggester) Option {
	return func(uc *UseCases) {
		uc.suggester = suggester
	}
}

// WithAuth sets the authentication use case. Without it the API runs
// unauthenticated.
func WithAuth(auth *AuthUseCase) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:   repo,
		engine: risk.New(nil),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Risk = NewRiskUseCase(repo, uc.engine)
	uc.Clause = NewClauseUseCase(repo, uc.suggester)
	uc.Contract = NewContractUseCase(repo, uc.renderer, uc.exporter, uc.archive, uc.notifier)

	return uc
}
