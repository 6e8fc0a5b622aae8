//go:build e2e

package panel_test

import (
	"testing"

	"github.com/aussiebroadwan/panel/pkg/panelsdk"
)

func TestHealthEndpoints(t *testing.T) {
	client := panelsdk.NewSDKClient(setupPanelContainer(t, nil))

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
}
