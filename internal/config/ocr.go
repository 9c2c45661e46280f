package config

// GetOCRAPIKey returns the OCR service API key. Empty disables photo support.
func GetOCRAPIKey() string {
	return GetEnvOrDefault("OCR_API_KEY", "")
}

// GetOCREndpoint returns the OCR service endpoint
func GetOCREndpoint() string {
	return GetEnvOrDefault("OCR_ENDPOINT", "https://api.ocr.space/parse/image")
}
