package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/dailycheckin/config"
	"github.com/cppla/dailycheckin/utils"
)

// ConfigController serves environment-driven UI configuration.
type ConfigController struct {
	cfg config.AppConfig
	now func() time.Time
}

func NewConfigController(cfg config.AppConfig) *ConfigController {
	return &ConfigController{cfg: cfg, now: time.Now}
}

// FooterLink is a named footer link. Links without a URL are rendered as plain text.
type FooterLink struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// FooterResponse describes the page footer.
type FooterResponse struct {
	Links     []FooterLink `json:"links"`
	Social    []FooterLink `json:"social"`
	Copyright string       `json:"copyright"`
}

// GetFooter returns footer configuration loaded from config with defaults.
func (c *ConfigController) GetFooter(ctx *gin.Context) {
	social := make([]FooterLink, 0, 2)
	if c.cfg.FooterLinkedInURL != "" {
		social = append(social, FooterLink{Name: "LinkedIn", URL: c.cfg.FooterLinkedInURL})
	}
	if c.cfg.FooterGitHubURL != "" {
		social = append(social, FooterLink{Name: "GitHub", URL: c.cfg.FooterGitHubURL})
	}

	utils.Success(ctx, FooterResponse{
		Links: []FooterLink{
			{Name: "About us", URL: c.cfg.FooterAboutURL},
			{Name: "Contact", URL: c.cfg.FooterContactURL},
			{Name: "Services"},
		},
		Social:    social,
		Copyright: fmt.Sprintf("Copyright © %d - All right reserved by %s", c.now().Year(), c.cfg.FooterBrand),
	})
}
