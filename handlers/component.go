package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sengkeat-dex/Tokenize/models"
	"github.com/sengkeat-dex/Tokenize/repositories"
)

type ComponentHandler struct {
	components repositories.ComponentReader
}

func NewComponentHandler(components repositories.ComponentReader) *ComponentHandler {
	return &ComponentHandler{components: components}
}

func (h *ComponentHandler) GetAll(c *gin.Context) {
	components, err := h.components.GetAllComponents(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK(components))
}

func (h *ComponentHandler) GetByType(c *gin.Context) {
	mainType := c.Param("mainType")

	components, err := h.components.GetComponentsByType(c.Request.Context(), mainType)
	if err != nil {
		h.fail(c, err)
		return
	}

	// An unmatched filter is still a successful request
	if len(components) == 0 {
		c.JSON(http.StatusOK, models.OKWithMessage([]models.Component{},
			fmt.Sprintf("No components found for type: %s", mainType)))
		return
	}
	c.JSON(http.StatusOK, models.OK(components))
}

func (h *ComponentHandler) GetBySubType(c *gin.Context) {
	mainType := c.Param("mainType")
	subType := c.Param("subType")

	components, err := h.components.GetComponentsBySubType(c.Request.Context(), mainType, subType)
	if err != nil {
		h.fail(c, err)
		return
	}

	if len(components) == 0 {
		c.JSON(http.StatusOK, models.OKWithMessage([]models.Component{},
			fmt.Sprintf("No components found for type: %s and subtype: %s", mainType, subType)))
		return
	}
	c.JSON(http.StatusOK, models.OK(components))
}

func (h *ComponentHandler) fail(c *gin.Context, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("component query failed")
	c.JSON(http.StatusInternalServerError, models.Fail("failed to load components"))
}
