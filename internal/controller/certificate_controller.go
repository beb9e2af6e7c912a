package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	Certificates *service.CertificateService
}

func NewCertificateController(certificates *service.CertificateService) *CertificateController {
	return &CertificateController{Certificates: certificates}
}

// ListMine godoc
// @Summary Current user's certificates
// @Tags certificates
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/certificates [get]
func (c *CertificateController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	certs, err := c.Certificates.ListForUser(claims.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}

// Verify godoc
// @Summary Verify a certificate by serial
// @Description Public endpoint for employers checking a certificate's authenticity
// @Tags certificates
// @Produce  json
// @Param   serial path string true "certificate serial"
// @Success 200 {object} util.Response{data=model.Certificate}
// @Failure 404 {object} util.Response
// @Router /api/certificates/{serial}/verify [get]
func (c *CertificateController) Verify(ctx *gin.Context) {
	cert, err := c.Certificates.Verify(ctx.Param("serial"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, cert)
}
