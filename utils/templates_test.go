package utils_test

import (
	"testing"

	"rotationcrm-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	vars := map[string]string{
		"ClientName":   "Sarah Chen",
		"BusinessName": "Studio North",
		"DaysOverdue":  "5",
	}

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			"substitutes every token",
			"Hi [ClientName], you're [DaysOverdue] days overdue with [BusinessName].",
			"Hi Sarah Chen, you're 5 days overdue with Studio North.",
		},
		{
			"repeated token",
			"[ClientName], [ClientName]!",
			"Sarah Chen, Sarah Chen!",
		},
		{
			"unknown token stays visible",
			"Hi [ClientNam], see you soon.",
			"Hi [ClientNam], see you soon.",
		},
		{
			"no tokens",
			"Plain message.",
			"Plain message.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.RenderTemplate(tt.message, vars))
		})
	}
}
