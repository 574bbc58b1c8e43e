package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"gold-pos/internal/models"
	"gold-pos/internal/pricing"
)

type ScrapIntakeParams struct {
	CustomerName string              `json:"customerName" binding:"required"`
	IDCardFin    string              `json:"idCardFin"`
	Phones       []models.ScrapPhone `json:"phones" binding:"required,min=1"`
	Items        []models.ScrapItem  `json:"items" binding:"required,min=1"`
	PricePerGram float64             `json:"pricePerGram" binding:"gt=0"`
	PersonImage  string              `json:"personImage"`
	IDCardImage  string              `json:"idCardImage"`
}

type ScrapService struct {
	scraps ScrapStore
	now    func() time.Time
	newID  func() string
}

func NewScrapService(scraps ScrapStore) *ScrapService {
	return &ScrapService{scraps: scraps, now: time.Now, newID: uuid.NewString}
}

func (s *ScrapService) List(ctx context.Context) ([]models.ScrapGold, error) {
	return s.scraps.List(ctx)
}

func (s *ScrapService) Create(ctx context.Context, scrap *models.ScrapGold) error {
	if scrap.ID == "" {
		scrap.ID = s.newID()
	}
	return s.scraps.Create(ctx, scrap)
}

// Intake records a buy-back. The payout is total weight times the agreed per-gram rate.
func (s *ScrapService) Intake(ctx context.Context, params ScrapIntakeParams) (*models.ScrapGold, error) {
	if strings.TrimSpace(params.CustomerName) == "" {
		return nil, invalid("customer name is required")
	}
	if len(params.Phones) == 0 || strings.TrimSpace(params.Phones[0].Number) == "" {
		return nil, invalid("a phone number is required")
	}
	if params.PricePerGram <= 0 {
		return nil, invalid("pricePerGram must be positive")
	}

	weights := make([]float64, len(params.Items))
	for i, item := range params.Items {
		weights[i] = item.Weight
	}
	if pricing.Sum(weights...) <= 0 {
		return nil, invalid("total weight must be positive")
	}

	scrap := &models.ScrapGold{
		ID:           s.newID(),
		CustomerName: strings.TrimSpace(params.CustomerName),
		IDCardFin:    params.IDCardFin,
		Phones:       params.Phones,
		Items:        params.Items,
		PricePerGram: params.PricePerGram,
		TotalPrice:   pricing.ScrapTotal(weights, params.PricePerGram),
		PersonImage:  params.PersonImage,
		IDCardImage:  params.IDCardImage,
		IsMelted:     false,
		Date:         s.now().UTC(),
	}
	if err := s.scraps.Create(ctx, scrap); err != nil {
		return nil, err
	}
	return scrap, nil
}
