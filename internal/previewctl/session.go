package previewctl

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"previewd/internal/common/fsutil"
	"previewd/pkg/types"
)

func mountSession(cfg *Config, key string, size int) (types.PreviewResource, error) {
	var res types.PreviewResource
	err := doJSON(cfg, http.MethodPost, "/previews", types.PreviewRequest{SourceKey: key, SizeHint: size}, &res)
	return res, err
}

func reportVisible(cfg *Config, id string, ratio float64) error {
	return doJSON(cfg, http.MethodPost, "/previews/"+id+"/visible",
		types.VisibilityUpdate{Visible: true, Ratio: ratio}, nil)
}

func cancelSession(cfg *Config, id string) error {
	return doJSON(cfg, http.MethodDelete, "/previews/"+id, nil, nil)
}

// mountAction prints the new session id on the first line so scripts can
// capture it.
func mountAction(cfg *Config, key string, size int) error {
	res, err := mountSession(cfg, key, size)
	if err != nil {
		return err
	}
	if cfg.JSON {
		b, _ := json.Marshal(res)
		fmt.Println(string(b))
		return nil
	}
	fmt.Println(res.ID)
	info("[previewctl] mounted %s (state %s, phase %s)", res.SourceKey, res.State, res.Phase)
	return nil
}

func getAction(cfg *Config, id string) error {
	if cfg.JSON {
		return printRawJSON(cfg, "/previews/"+id)
	}
	var res types.PreviewResource
	if err := getJSON(cfg, "/previews/"+id, &res); err != nil {
		return err
	}
	fmt.Printf("id:        %s\n", res.ID)
	fmt.Printf("source:    %s\n", res.SourceKey)
	fmt.Printf("state:     %s\n", res.State)
	fmt.Printf("phase:     %s\n", res.Phase)
	fmt.Printf("has_image: %v\n", res.HasImage)
	if res.Error != "" {
		fmt.Printf("error:     %s\n", res.Error)
	}
	return nil
}

func visibleAction(cfg *Config, id string, ratio float64) error {
	if err := reportVisible(cfg, id, ratio); err != nil {
		return err
	}
	fmt.Printf("reported visible (ratio %g)\n", ratio)
	return nil
}

func cancelAction(cfg *Config, id string) error {
	if err := cancelSession(cfg, id); err != nil {
		return err
	}
	fmt.Println("cancelled")
	return nil
}

// imageAction downloads the snapshot. Empty or "-" output writes the PNG to
// stdout for piping.
func imageAction(cfg *Config, id, out string) error {
	b, ct, err := getBytes(cfg, "/previews/"+id+"/image")
	if err != nil {
		return err
	}
	if ct != "" && ct != "image/png" {
		warn("[previewctl] unexpected content type %q", ct)
	}
	if out == "" || out == "-" {
		_, err := os.Stdout.Write(b)
		return err
	}
	// Atomic write so a build script reading the file never sees half a PNG.
	if err := fsutil.WriteFileAtomic(out, b, 0o644); err != nil {
		return err
	}
	info("[previewctl] wrote %s (%d bytes)", out, len(b))
	return nil
}
