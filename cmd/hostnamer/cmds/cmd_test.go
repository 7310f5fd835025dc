package cmd

// DCSO hostnamer
// Copyright (c) 2026, DCSO GmbH

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DCSO/hostnamer/processing"
	"github.com/DCSO/hostnamer/types"
	"github.com/DCSO/hostnamer/util"
)

var testPTR = map[string]string{
	"8.8.8.8.in-addr.arpa": "dns.google.",
	"1.1.1.1.in-addr.arpa": "one.one.one.one.",
}

func makeTestResolver(t *testing.T) *util.DoHResolver {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		rrtype := r.URL.Query().Get("type")
		w.Header().Set("Content-Type", "application/dns-json")
		switch {
		case name == "fail.example":
			http.Error(w, "upstream failure", http.StatusInternalServerError)
		case rrtype == "PTR" && testPTR[name] != "":
			fmt.Fprintf(w, `{"Status":0,"Answer":[{"name":%q,"type":12,"TTL":300,"data":%q}]}`, name, testPTR[name])
		case rrtype == "A" && name == "dns.google":
			fmt.Fprint(w, `{"Status":0,"Answer":[{"data":"8.8.8.8"},{"data":"8.8.4.4"}]}`)
		default:
			fmt.Fprint(w, `{"Status":3}`)
		}
	}))
	t.Cleanup(srv.Close)
	return util.MakeDoHResolver(srv.URL+"/resolve", srv.Client())
}

func TestDoLookup(t *testing.T) {
	r := makeTestResolver(t)
	var buf bytes.Buffer
	if err := doLookup(context.TODO(), r, "dns.google", "a", &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "8.8.8.8\n8.8.4.4\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}

	buf.Reset()
	if err := doLookup(context.TODO(), r, "nothing.example", "A", &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "no data\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}

	err := doLookup(context.TODO(), r, "fail.example", "A", &buf)
	if !util.IsResolutionError(err) {
		t.Fatalf("expected resolution error, got %v", err)
	}
}

func TestDoReverse(t *testing.T) {
	r := makeTestResolver(t)
	var buf bytes.Buffer
	if err := doReverse(context.TODO(), r, []string{"8.8.8.8", "300.1.1.1", "1.1.1.1"}, nil, &buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", buf.String())
	}
	if lines[0] != "dns.google." || lines[2] != "one.one.one.one." {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if !strings.HasPrefix(lines[1], "no data") {
		t.Fatalf("invalid address should yield no data: %q", lines[1])
	}

	buf.Reset()
	in := strings.NewReader("1.1.1.1\n\n  8.8.8.8  \n")
	if err := doReverse(context.TODO(), r, nil, in, &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "one.one.one.one.\ndns.google.\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func makeTestFillConfig(t *testing.T, content string) fillConfig {
	t.Helper()
	p := filepath.Join(t.TempDir(), "hosts.csv")
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fillConfig{
		StoreType:  "csv",
		Input:      p,
		Comma:      ",",
		FrozenRows: 1,
		Columns:    types.DefaultColumns(),
		Workers:    1,
	}
}

const testCSV = "IP,Hostname\n8.8.8.8,\n1.1.1.1,existing.host\n192.0.2.1,\n"

func TestDoFill(t *testing.T) {
	r := makeTestResolver(t)
	r.StripTrailingDot = true
	cfg := makeTestFillConfig(t, testCSV)
	filler, err := makeFiller(cfg, r)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	report, source, err := doFill(context.TODO(), cfg, filler, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if source != cfg.Input {
		t.Fatalf("wrong source: %s", source)
	}
	if report.Written != 2 || report.Resolved != 1 || report.NoData != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	b, err := os.ReadFile(cfg.Input)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "IP,Hostname\n8.8.8.8,dns.google\n1.1.1.1,existing.host\n192.0.2.1,no data\n" {
		t.Fatalf("unexpected file content: %q", string(b))
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected output: %q", buf.String())
	}

	// second run does not change anything
	report, _, err = doFill(context.TODO(), cfg, filler, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if report.Written != 0 {
		t.Fatalf("second run wrote %d rows", report.Written)
	}
}

func TestDoFillDryRun(t *testing.T) {
	r := makeTestResolver(t)
	cfg := makeTestFillConfig(t, testCSV)
	cfg.DryRun = true
	cfg.Output = filepath.Join(filepath.Dir(cfg.Input), "out.csv")
	filler, err := makeFiller(cfg, r)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	_, _, err = doFill(context.TODO(), cfg, filler, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != "row,ip,hostname\n1,8.8.8.8,dns.google.\n3,192.0.2.1,no data\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	b, _ := os.ReadFile(cfg.Input)
	if string(b) != testCSV {
		t.Fatal("input modified in dry run")
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Fatal("output written in dry run")
	}
}

func TestDoFillPrivateOnly(t *testing.T) {
	r := makeTestResolver(t)
	cfg := makeTestFillConfig(t, "IP,Hostname\n8.8.8.8,\n10.1.1.1,\n")
	cfg.PrivateOnly = true
	cfg.Workers = 4
	filler, err := makeFiller(cfg, r)
	if err != nil {
		t.Fatal(err)
	}
	report, _, err := doFill(context.TODO(), cfg, filler, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Filled) != 1 || report.Filled[0].IP != "10.1.1.1" {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestDoFillErrors(t *testing.T) {
	r := makeTestResolver(t)
	cfg := makeTestFillConfig(t, "Address,Name\n8.8.8.8,\n")
	filler, _ := makeFiller(cfg, r)
	_, _, err := doFill(context.TODO(), cfg, filler, &bytes.Buffer{})
	if err == nil {
		t.Fatal("missing columns should fail")
	}

	cfg.StoreType = "sqlite"
	_, _, err = doFill(context.TODO(), cfg, filler, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "unknown store type") {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg = makeTestFillConfig(t, testCSV)
	cfg.SkipRanges = filepath.Join(t.TempDir(), "missing")
	if _, err := makeFiller(cfg, r); err == nil {
		t.Fatal("missing skip range file should fail")
	}
}

func TestParseComma(t *testing.T) {
	for in, exp := range map[string]rune{"": ',', ",": ',', ";": ';', "tab": '\t', `\t`: '\t'} {
		c, err := parseComma(in)
		if err != nil {
			t.Fatal(err)
		}
		if c != exp {
			t.Fatalf("wrong separator for %q: %q", in, c)
		}
	}
	if _, err := parseComma(";;"); err == nil {
		t.Fatal("multi-character separator should fail")
	}
}

func TestDummySubmitterReport(t *testing.T) {
	s, err := makeSubmitter("", "", true, false)
	if err != nil {
		t.Fatal(err)
	}
	rs, err := processing.MakeReportShipper(s, "test")
	if err != nil {
		t.Fatal(err)
	}
	if err := rs.Ship(processing.FillReport{}); err != nil {
		t.Fatal(err)
	}
	if s.(*util.DummySubmitter).Count != 1 {
		t.Fatal("report not submitted")
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected version output: %q", buf.String())
	}
	if lines[0] != "hostnamer "+version {
		t.Fatalf("unexpected version line %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], util.DefaultDoHEndpoint) {
		t.Fatalf("endpoint missing from %q", lines[1])
	}
}

func TestWriteManPages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "man")
	if err := writeManPages(dir); err != nil {
		t.Fatal(err)
	}
	for _, page := range []string{"hostnamer.1", "hostnamer-fill.1", "hostnamer-reverse.1"} {
		b, err := os.ReadFile(filepath.Join(dir, page))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(b), "hostnamer manual") {
			t.Fatalf("%s lacks manual name", page)
		}
		if !strings.Contains(string(b), "DCSO hostnamer "+version) {
			t.Fatalf("%s lacks source", page)
		}
	}
}
