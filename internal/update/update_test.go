package update

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCheckNoNetworkOrCI(t *testing.T) {
	t.Setenv("CI", "1")
	if latest, isNewer, err := Check("1.0.0", false); err != nil || latest != "" || isNewer {
		t.Fatalf("expected no-op in CI; got latest=%q newer=%v err=%v", latest, isNewer, err)
	}
}

func TestNormalizeAndNewer(t *testing.T) {
	if normalize(" v1.2.3 ") != "1.2.3" {
		t.Fatalf("normalize failed")
	}
	if newer("1.2.3", "1.2.3") {
		t.Fatalf("equal versions are not newer")
	}
	if !newer("1.3.0", "1.2.9") {
		t.Fatalf("expected 1.3.0 newer than 1.2.9")
	}
	if newer("1.2.0", "1.2.1") {
		t.Fatalf("expected 1.2.0 not newer than 1.2.1")
	}
	if newer("dev", "1.0.0") {
		t.Fatalf("unparseable version must never report newer")
	}
}

func TestCheckUsesCacheWhenFresh(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("CI", "")
	c := cache{LastChecked: time.Now(), Latest: "1.2.3"}
	path := filepath.Join(dir, "codemend", cacheFileName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	b, _ := json.Marshal(c)
	if err := os.WriteFile(path, b, 0644); err != nil {
		t.Fatal(err)
	}
	latest, isNewer, err := Check("1.2.2", false)
	if err != nil {
		t.Fatal(err)
	}
	if latest != "1.2.3" || !isNewer {
		t.Fatalf("expected cached latest=1.2.3 and newer=true; got latest=%q newer=%v", latest, isNewer)
	}
}
