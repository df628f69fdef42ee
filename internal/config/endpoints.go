package config

// EndpointConfig 리전과 환경별 이벤트 수신 엔드포인트입니다.
type EndpointConfig struct {
	Region                 string `json:"region"`
	Environment            string `json:"environment"`
	NotificationServiceURL string `json:"notification_service_url"`
}

// LoadEndpoints 엔드포인트 목록 파일(JSON 배열)을 읽어들입니다.
func LoadEndpoints(filename string) ([]EndpointConfig, error) {
	return loadList[EndpointConfig](filename, "엔드포인트 목록")
}

// SelectEndpoints region과 environment가 정확히 일치하는 엔드포인트를 파일에 선언된 순서대로 반환합니다.
// 일치하는 항목이 없으면 빈 슬라이스를 반환합니다.
func SelectEndpoints(endpoints []EndpointConfig, region, environment string) []EndpointConfig {
	matched := make([]EndpointConfig, 0, 1)
	for _, e := range endpoints {
		if e.Region == region && e.Environment == environment {
			matched = append(matched, e)
		}
	}
	return matched
}
