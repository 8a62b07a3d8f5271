package adapter

import (
	"context"
	"fmt"

	"github.com/agrobank/financing-service/internal/domain/model"
)

// TemplateContractRenderer implements port.ContractDocumentPort. The real
// document service lives outside this module; the renderer returns the
// deterministic URL under which that service exposes the generated PDF.
type TemplateContractRenderer struct {
	baseURL string
}

// NewTemplateContractRenderer creates a renderer rooted at baseURL.
func NewTemplateContractRenderer(baseURL string) *TemplateContractRenderer {
	return &TemplateContractRenderer{baseURL: baseURL}
}

// Render returns the document location for a contract.
func (r *TemplateContractRenderer) Render(ctx context.Context, c model.FinancingContract) (string, error) {
	if c.ContractNo() == "" {
		return "", fmt.Errorf("contract has no contract number")
	}
	return fmt.Sprintf("%s/contracts/%s.pdf", r.baseURL, c.ContractNo()), nil
}
