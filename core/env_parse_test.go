package core

import (
	"os"
	"testing"
	"time"
)

func TestGetEnvOrDefault(t *testing.T) {
	const testKey = "FINSUM_TEST_GET_ENV_OR_DEFAULT"
	defer os.Unsetenv(testKey)

	tests := []struct {
		name         string
		envValue     string
		setEnv       bool
		defaultValue string
		want         string
	}{
		{
			name:         "returns env value when set",
			envValue:     "custom_value",
			setEnv:       true,
			defaultValue: "default",
			want:         "custom_value",
		},
		{
			name:         "returns default when not set",
			setEnv:       false,
			defaultValue: "default",
			want:         "default",
		},
		{
			name:         "returns default when empty",
			envValue:     "",
			setEnv:       true,
			defaultValue: "default",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv(testKey)
			if tt.setEnv {
				os.Setenv(testKey, tt.envValue)
			}
			got := GetEnvOrDefault(testKey, tt.defaultValue)
			if got != tt.want {
				t.Errorf("GetEnvOrDefault() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseIntEnv(t *testing.T) {
	const testKey = "FINSUM_TEST_PARSE_INT_ENV"
	defer os.Unsetenv(testKey)

	tests := []struct {
		name         string
		envValue     string
		setEnv       bool
		defaultValue int
		want         int
	}{
		{"parses valid int", "42", true, 0, 42},
		{"trims whitespace", " 7 ", true, 0, 7},
		{"negative value", "-3", true, 0, -3},
		{"default when unset", "", false, 5, 5},
		{"default on garbage", "three", true, 5, 5},
		{"default on float", "1.5", true, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv(testKey)
			if tt.setEnv {
				os.Setenv(testKey, tt.envValue)
			}
			if got := ParseIntEnv(testKey, tt.defaultValue); got != tt.want {
				t.Errorf("ParseIntEnv() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseFloat64Env(t *testing.T) {
	const testKey = "FINSUM_TEST_PARSE_FLOAT_ENV"
	defer os.Unsetenv(testKey)

	tests := []struct {
		name         string
		envValue     string
		setEnv       bool
		defaultValue float64
		want         float64
	}{
		{"parses float", "0.7", true, 0, 0.7},
		{"parses int as float", "2", true, 0, 2},
		{"default when unset", "", false, 1.5, 1.5},
		{"default on garbage", "warm", true, 1.5, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv(testKey)
			if tt.setEnv {
				os.Setenv(testKey, tt.envValue)
			}
			if got := ParseFloat64Env(testKey, tt.defaultValue); got != tt.want {
				t.Errorf("ParseFloat64Env() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseBoolEnv(t *testing.T) {
	const testKey = "FINSUM_TEST_PARSE_BOOL_ENV"
	defer os.Unsetenv(testKey)

	tests := []struct {
		envValue     string
		defaultValue bool
		want         bool
	}{
		{"true", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"on", false, true},
		{"false", true, false},
		{"0", true, false},
		{"No", true, false},
		{"off", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.envValue, func(t *testing.T) {
			os.Setenv(testKey, tt.envValue)
			if got := ParseBoolEnv(testKey, tt.defaultValue); got != tt.want {
				t.Errorf("ParseBoolEnv(%q, %v) = %v, want %v", tt.envValue, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestParseDurationEnv(t *testing.T) {
	const testKey = "FINSUM_TEST_PARSE_DURATION_ENV"
	defer os.Unsetenv(testKey)

	os.Setenv(testKey, "30")
	if got := ParseDurationEnv(testKey, 5); got != 30*time.Second {
		t.Errorf("ParseDurationEnv() = %v, want 30s", got)
	}

	os.Unsetenv(testKey)
	if got := ParseDurationEnv(testKey, 5); got != 5*time.Second {
		t.Errorf("ParseDurationEnv() default = %v, want 5s", got)
	}
}

func TestParseMillisEnv(t *testing.T) {
	const testKey = "FINSUM_TEST_PARSE_MILLIS_ENV"
	defer os.Unsetenv(testKey)

	os.Setenv(testKey, "250")
	if got := ParseMillisEnv(testKey, time.Second); got != 250*time.Millisecond {
		t.Errorf("ParseMillisEnv() = %v, want 250ms", got)
	}

	os.Unsetenv(testKey)
	if got := ParseMillisEnv(testKey, 2*time.Second); got != 2*time.Second {
		t.Errorf("ParseMillisEnv() default = %v, want 2s", got)
	}
}
