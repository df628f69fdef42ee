package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEndpoints(t *testing.T) {
	path := writeFile(t, "config.json", `[
		{"region": "EU", "environment": "dev", "notification_service_url": "https://api.eu.amazonalexa.com/v1/proactiveEvents/stages/development"},
		{"region": "EU", "environment": "pro", "notification_service_url": "https://api.eu.amazonalexa.com/v1/proactiveEvents"}
	]`)

	endpoints, err := LoadEndpoints(path)
	require.NoError(t, err)
	require.Len(t, endpoints, 2)
	assert.Equal(t, "https://api.eu.amazonalexa.com/v1/proactiveEvents", endpoints[1].NotificationServiceURL)
}

func TestSelectEndpoints(t *testing.T) {
	endpoints := []EndpointConfig{
		{Region: "NA", Environment: "dev", NotificationServiceURL: "https://na-dev"},
		{Region: "EU", Environment: "dev", NotificationServiceURL: "https://eu-dev"},
		{Region: "EU", Environment: "pro", NotificationServiceURL: "https://eu-pro"},
		{Region: "EU", Environment: "dev", NotificationServiceURL: "https://eu-dev-2"},
	}

	tests := []struct {
		name        string
		region      string
		environment string
		wantURLs    []string
	}{
		{name: "단일 일치", region: "NA", environment: "dev", wantURLs: []string{"https://na-dev"}},
		{name: "복수 일치는 선언 순서 유지", region: "EU", environment: "dev", wantURLs: []string{"https://eu-dev", "https://eu-dev-2"}},
		{name: "일치 없음", region: "FE", environment: "pro", wantURLs: []string{}},
		{name: "대소문자 구분", region: "eu", environment: "dev", wantURLs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectEndpoints(endpoints, tt.region, tt.environment)
			require.NotNil(t, got)

			urls := make([]string, 0, len(got))
			for _, e := range got {
				urls = append(urls, e.NotificationServiceURL)
			}
			assert.Equal(t, tt.wantURLs, urls)
		})
	}
}
