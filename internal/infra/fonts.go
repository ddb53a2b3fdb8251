package infra

import (
	"fmt"
	"os"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/model"
)

// LoadFont reads a TrueType font file for the PDF renderer. A missing or
// empty file is reported as ResourceUnavailable so the caller can degrade to
// a core font instead of failing the export.
func LoadFont(path string) ([]byte, error) {
	if path == "" {
		return nil, model.NewResourceUnavailableError("font", fmt.Errorf("no font path configured"))
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, model.NewResourceUnavailableError("font", err)
	}
	if len(b) == 0 {
		return nil, model.NewResourceUnavailableError("font", fmt.Errorf("%s is empty", path))
	}
	return b, nil
}
