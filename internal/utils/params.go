package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// GetMonthYear reads the month/year query parameters, defaulting to the
// current month and year when absent.
func GetMonthYear(ctx *gin.Context) (int, int, error) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if monthStr := ctx.Query("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)

		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, errors.New("Invalid month")
		}

		month = parsed
	}

	if yearStr := ctx.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)

		if err != nil || parsed < 1 {
			return 0, 0, errors.New("Invalid year")
		}

		year = parsed
	}

	return month, year, nil
}

// GetIDParam parses a numeric path parameter.
func GetIDParam(ctx *gin.Context, name string) (uint, error) {
	idStr := ctx.Param(name)

	if idStr == "" {
		return 0, errors.New("Missing " + name)
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + name)
	}

	return uint(id), nil
}
