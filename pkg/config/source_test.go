package config

import "testing"

func TestFirstNonBlank(t *testing.T) {
	tests := []struct {
		name   string
		env    MapSource
		appSet MapSource
		want   string
	}{
		{
			name:   "environment wins",
			env:    MapSource{KeyVaultNameEnvVar: "env-vault"},
			appSet: MapSource{KeyVaultNameKey: "settings-vault"},
			want:   "env-vault",
		},
		{
			name:   "blank environment falls back",
			env:    MapSource{KeyVaultNameEnvVar: "   "},
			appSet: MapSource{KeyVaultNameKey: "settings-vault"},
			want:   "settings-vault",
		},
		{
			name:   "missing environment falls back",
			env:    MapSource{},
			appSet: MapSource{KeyVaultNameKey: "settings-vault"},
			want:   "settings-vault",
		},
		{
			name:   "nothing set",
			env:    MapSource{},
			appSet: MapSource{},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FirstNonBlank(
				Lookup{Source: tt.env, Key: KeyVaultNameEnvVar},
				Lookup{Source: tt.appSet, Key: KeyVaultNameKey},
			)
			if got != tt.want {
				t.Errorf("FirstNonBlank() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetNilSource(t *testing.T) {
	if got := Get(nil, KeyVaultNameKey); got != "" {
		t.Errorf("Get(nil) = %q, want empty", got)
	}
}

func TestEnv(t *testing.T) {
	t.Setenv(KeyVaultNameEnvVar, "env-vault")
	if got := Get(Env{}, KeyVaultNameEnvVar); got != "env-vault" {
		t.Errorf("Get(Env) = %q, want %q", got, "env-vault")
	}
}
