package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/chronos-room-api/internal/middleware"
	"github.com/noah-isme/chronos-room-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func paginationFromQuery(c *gin.Context) models.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	return models.Pagination{Page: page, PageSize: pageSize}
}
