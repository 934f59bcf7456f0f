package config

import "time"

// LoadFeatureProfileWithInterval exposes the poll interval to tests.
func LoadFeatureProfileWithInterval(filePath string, interval time.Duration) (*FeatureProfile, error) {
	return loadFeatureProfile(filePath, interval)
}
