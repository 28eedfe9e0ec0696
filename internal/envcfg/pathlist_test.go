// SPDX-License-Identifier: MPL-2.0

package envcfg

import (
	"testing"

	"pordosol-setup/internal/platform"
)

func TestSplitPathListDropsEmpties(t *testing.T) {
	got := SplitPathList("/a;;/b; ;/c", ';')
	want := []string{"/a", "/b", "/c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestAddPathEntryIsSetAdd(t *testing.T) {
	p := platform.Platform{OS: platform.Linux}
	list := []string{"/usr/bin"}

	list, changed := AddPathEntry(list, "/home/u/.pordosol/bin", p)
	if !changed {
		t.Fatal("expected first add to change the list")
	}

	// Repeated adds across N runs leave exactly one occurrence.
	for run := 0; run < 3; run++ {
		var again bool
		list, again = AddPathEntry(list, "/home/u/.pordosol/bin", p)
		if again {
			t.Fatalf("run %d: expected no-op for existing entry", run)
		}
	}

	count := 0
	for _, e := range list {
		if e == "/home/u/.pordosol/bin" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one occurrence, got %d in %v", count, list)
	}
}

func TestAddPathEntryTrailingSeparator(t *testing.T) {
	p := platform.Platform{OS: platform.Linux}
	list := []string{"/home/u/.pordosol/bin"}

	if _, changed := AddPathEntry(list, "/home/u/.pordosol/bin/", p); changed {
		t.Error("expected trailing-separator variant to be recognized as present")
	}
}

func TestAddPathEntryCaseInsensitivePlatforms(t *testing.T) {
	win := platform.Platform{OS: platform.Windows}
	list := []string{`C:\Users\u\.pordosol\bin`}

	if ContainsPathEntry(list, `c:\users\u\.pordosol\BIN`, win) == false {
		t.Error("expected case-folded match on windows")
	}

	linux := platform.Platform{OS: platform.Linux}
	if ContainsPathEntry([]string{"/opt/BIN"}, "/opt/bin", linux) {
		t.Error("expected case-sensitive comparison on linux")
	}
}

func TestJoinPathListRoundTrip(t *testing.T) {
	entries := []string{"/a", "/b"}
	joined := JoinPathList(entries, ';')
	if joined != "/a;/b" {
		t.Errorf("expected \"/a;/b\", got %q", joined)
	}
}
