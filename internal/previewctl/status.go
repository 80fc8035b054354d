package previewctl

import (
	"encoding/json"
	"fmt"
	"time"

	"previewd/pkg/types"
)

// printRawJSON dumps the endpoint body unformatted for --json consumers.
func printRawJSON(cfg *Config, path string) error {
	var raw json.RawMessage
	if err := getJSON(cfg, path, &raw); err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

func statusAction(cfg *Config) error {
	if cfg.JSON {
		return printRawJSON(cfg, "/status")
	}
	var st types.StatusResponse
	if err := getJSON(cfg, "/status", &st); err != nil {
		return err
	}
	up := time.Duration(st.UptimeSeconds) * time.Second
	fmt.Printf("backend:  %s (up %s, %d/%d contexts busy)\n",
		st.Backend, up, st.BackendInUse, st.BackendContexts)
	fmt.Printf("queue:    %d/%d pending, %d/%d slots busy\n",
		st.QueueDepth, st.QueueCapacity, st.ActiveRenders, st.RenderSlots)
	fmt.Printf("cache:    %d/%d entries, %d hits, %d misses, %d evictions\n",
		st.CacheEntries, st.CacheCapacity, st.CacheHits, st.CacheMisses, st.CacheEvictions)
	fmt.Printf("renders:  %d total, %d errors\n", st.RendersTotal, st.RenderErrorsTotal)
	fmt.Printf("sessions: %d\n", len(st.Sessions))
	for _, s := range st.Sessions {
		fmt.Printf("  %s  %-7s %-16s %s\n", s.ID, s.State, s.Phase, s.SourceKey)
	}
	return nil
}

func assetsAction(cfg *Config) error {
	if cfg.JSON {
		return printRawJSON(cfg, "/assets")
	}
	var ar types.AssetsResponse
	if err := getJSON(cfg, "/assets", &ar); err != nil {
		return err
	}
	if len(ar.Assets) == 0 {
		fmt.Println("no assets")
		return nil
	}
	for _, a := range ar.Assets {
		fmt.Printf("%-40s %-5s %10d bytes\n", a.ID, a.Format, a.SizeBytes)
	}
	return nil
}

func visibilityAction(cfg *Config) error {
	if cfg.JSON {
		return printRawJSON(cfg, "/visibility")
	}
	var vc types.VisibilityConfig
	if err := getJSON(cfg, "/visibility", &vc); err != nil {
		return err
	}
	fmt.Printf("provider:       %s\n", vc.Provider)
	fmt.Printf("margin_px:      %d\n", vc.MarginPx)
	fmt.Printf("threshold:      %g\n", vc.Threshold)
	fmt.Printf("keep_observing: %v\n", vc.KeepObserving)
	return nil
}

// checkAction probes the liveness and readiness endpoints and fails when the
// daemon is degraded, so it can gate deploy scripts.
func checkAction(cfg *Config) error {
	start := time.Now()
	if err := getJSON(cfg, "/healthz", nil); err != nil {
		return fmt.Errorf("healthz: %w", err)
	}
	fmt.Printf("healthz: ok (%s)\n", time.Since(start).Round(time.Millisecond))
	if err := getJSON(cfg, "/readyz", nil); err != nil {
		return fmt.Errorf("readyz: %w", err)
	}
	fmt.Println("readyz: ok")
	return nil
}
