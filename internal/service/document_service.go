package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/i18n"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/infra"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/model"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/render"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DocumentConfig is the part of the runtime configuration the renderer needs.
type DocumentConfig struct {
	ShopName    string
	FontPath    string
	StoragePath string // optional copy of every exported PDF
}

// ExportedPDF is a finished export ready to be sent as an attachment.
type ExportedPDF struct {
	FileName string
	Content  []byte
	Degraded bool
	Language i18n.Language // language actually rendered
}

// DocumentService prints and exports bills. Preconditions are checked before
// any rendering or file write; a failure never changes the draft.
type DocumentService interface {
	PrintDraft(ctx context.Context, id uuid.UUID, lang i18n.Language) ([]byte, error)
	ExportDraft(ctx context.Context, id uuid.UUID, lang i18n.Language) (ExportedPDF, error)
	ExportSaved(ctx context.Context, id uuid.UUID, lang i18n.Language) (ExportedPDF, error)
}

type documentService struct {
	billing BillingService
	cfg     DocumentConfig
}

func NewDocumentService(billing BillingService, cfg DocumentConfig) DocumentService {
	return &documentService{billing: billing, cfg: cfg}
}

// PrintDraft renders the print view as HTML.
func (s *documentService) PrintDraft(_ context.Context, id uuid.UUID, lang i18n.Language) ([]byte, error) {
	d, err := s.billing.Draft(id)
	if err != nil {
		return nil, err
	}
	bill := d.Composer.Bill()
	if err := bill.ValidateForDocument(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := render.PrintHTML(&buf, render.Build(bill, lang, s.cfg.ShopName)); err != nil {
		log.Error().Err(err).Str("draft_id", id.String()).Msg("document: print view failed")
		return nil, model.NewPrintFailure(err)
	}
	return buf.Bytes(), nil
}

func (s *documentService) ExportDraft(ctx context.Context, id uuid.UUID, lang i18n.Language) (ExportedPDF, error) {
	d, err := s.billing.Draft(id)
	if err != nil {
		return ExportedPDF{}, err
	}
	return s.export(ctx, d.Composer.Bill(), lang)
}

func (s *documentService) ExportSaved(ctx context.Context, id uuid.UUID, lang i18n.Language) (ExportedPDF, error) {
	snap, err := s.billing.FindSaved(ctx, id)
	if err != nil {
		return ExportedPDF{}, err
	}
	return s.export(ctx, snap.Bill(), lang)
}

func (s *documentService) export(_ context.Context, bill model.Bill, lang i18n.Language) (ExportedPDF, error) {
	if err := bill.ValidateForDocument(); err != nil {
		return ExportedPDF{}, err
	}

	font, err := infra.LoadFont(s.cfg.FontPath)
	if err != nil {
		log.Warn().Err(err).Str("font_path", s.cfg.FontPath).Msg("document: font unavailable, falling back to Helvetica")
	}

	doc := render.Build(bill, lang, s.cfg.ShopName)
	var buf bytes.Buffer
	res, err := render.PDF(&buf, doc, font)
	if err != nil {
		log.Error().Err(err).Msg("document: PDF render failed")
		return ExportedPDF{}, model.NewExportFailure(err)
	}
	if res.Degraded && font != nil {
		log.Warn().Err(res.FontErr).Str("font_path", s.cfg.FontPath).Msg("document: font rejected, falling back to Helvetica")
	}
	// Helvetica cannot encode the secondary script, so a degraded export
	// is laid out again with English labels and primary names.
	if res.Degraded && doc.Language.Secondary() {
		doc = render.Build(bill, i18n.English, s.cfg.ShopName)
		buf.Reset()
		if _, err := render.PDF(&buf, doc, nil); err != nil {
			log.Error().Err(err).Msg("document: PDF render failed")
			return ExportedPDF{}, model.NewExportFailure(err)
		}
		log.Warn().Str("requested_lang", string(lang)).Msg("document: exported in English without the secondary font")
	}

	out := ExportedPDF{
		FileName: render.FileName(bill),
		Content:  buf.Bytes(),
		Degraded: res.Degraded,
		Language: doc.Language,
	}
	if s.cfg.StoragePath != "" {
		if err := s.store(out); err != nil {
			log.Error().Err(err).Str("file", out.FileName).Msg("document: could not store PDF")
			return ExportedPDF{}, model.NewExportFailure(err)
		}
	}
	return out, nil
}

func (s *documentService) store(pdf ExportedPDF) error {
	if err := os.MkdirAll(s.cfg.StoragePath, 0o755); err != nil {
		return fmt.Errorf("pdf: create storage dir: %w", err)
	}
	path := filepath.Join(s.cfg.StoragePath, pdf.FileName)
	if err := os.WriteFile(path, pdf.Content, 0o644); err != nil {
		return fmt.Errorf("pdf: write file: %w", err)
	}
	log.Info().Str("path", path).Msg("document: PDF stored")
	return nil
}
