package ports

import (
	"context"

	"quotiza-connect/internal/domain"
)

// QuotizaClient defines the interface for the Quotiza partner API
type QuotizaClient interface {
	// SubmitProducts posts a batch of products to the import endpoint and
	// returns the partner-assigned job ID
	SubmitProducts(ctx context.Context, creds domain.Credentials, products []domain.QuotizaProduct) (string, error)

	// CheckImportStatus polls the status of an import job
	CheckImportStatus(ctx context.Context, creds domain.Credentials, jobID string) (*domain.ImportStatus, error)
}
