package service

import (
	"bytes"
	"context"
	"fmt"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// ArtifactRenderer produces a displayable artifact for an issued certificate
// and returns its URL. Rendering is a side-channel: callers log failures and
// move on, the certificate record itself is already persisted.
type ArtifactRenderer interface {
	Render(ctx context.Context, cert *model.Certificate) (string, error)
}

// PNGCertificateRenderer draws a simple certificate image and uploads it
// through the storage provider.
type PNGCertificateRenderer struct {
	Storage *StorageService
}

func NewPNGCertificateRenderer(storage *StorageService) *PNGCertificateRenderer {
	return &PNGCertificateRenderer{Storage: storage}
}

func (r *PNGCertificateRenderer) Render(ctx context.Context, cert *model.Certificate) (string, error) {
	const width, height = 1200, 850

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Border
	dc.SetRGB(0.13, 0.32, 0.55)
	dc.SetLineWidth(8)
	dc.DrawRectangle(40, 40, width-80, height-80)
	dc.Stroke()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored("CERTIFICATE OF COMPLETION", width/2, 200, 0.5, 0.5)
	dc.DrawStringAnchored("This certifies that", width/2, 300, 0.5, 0.5)
	dc.DrawStringAnchored(cert.RecipientName, width/2, 370, 0.5, 0.5)
	dc.DrawStringAnchored("has successfully completed the course", width/2, 440, 0.5, 0.5)
	dc.DrawStringAnchored(cert.CourseTitle, width/2, 510, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("Issued %s", cert.IssuedAt.Format(util.DateFormat)), width/2, 620, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("Serial: %s", cert.Serial), width/2, 680, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("certificates/%s.png", cert.Serial)
	return r.Storage.Upload(ctx, filename, &buf, int64(buf.Len()), "image/png")
}
