package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// Packages whose tests need a database or a deployed instance. They run
// one at a time after the unit pass.
const defaultIntegrationPkgs = "api/config,api/services/omnipay/db,api/router"

type options struct {
	testsDir        string
	pkgParallel     int
	count           int
	integrationPkgs string
	integrationRun  string
	skipIntegration bool
	verbose         bool
}

func main() {
	var o options
	flag.StringVar(&o.testsDir, "tests-dir", "/app/tests", "directory containing compiled test binaries")
	flag.IntVar(&o.pkgParallel, "pkg-parallel", runtime.NumCPU(), "number of packages to run in parallel during the unit pass")
	flag.IntVar(&o.count, "count", 1, "pass -test.count to disable caching when set to 1")
	flag.StringVar(&o.integrationPkgs, "integration-pkgs", defaultIntegrationPkgs, "comma separated package paths like 'api/router' run without -test.short")
	flag.StringVar(&o.integrationRun, "integration-run", "", "regex of integration test(s) to run with -test.run")
	flag.BoolVar(&o.skipIntegration, "skip-integration", false, "only run the unit pass")
	flag.BoolVar(&o.verbose, "v", true, "add -test.v to test binaries")
	flag.Parse()

	if err := run(o); err != nil {
		fatal(err)
	}
	fmt.Println("==> All tests passed")
}

func run(o options) error {
	bins, err := collectTestBinaries(o.testsDir)
	if err != nil {
		return err
	}
	if len(bins) == 0 {
		return errors.New("no test binaries found")
	}

	fmt.Println("==> Running unit tests")
	if err := runBinaries(bins, testArgs(o.verbose, true, o.count, 0), o.pkgParallel); err != nil {
		return err
	}
	if o.skipIntegration {
		return nil
	}

	integrationBins, err := integrationBinaries(o.testsDir, splitList(o.integrationPkgs))
	if err != nil {
		return err
	}
	args := testArgs(o.verbose, false, o.count, 1) // force -test.parallel=1 for integration
	if o.integrationRun != "" {
		args = append(args, "-test.run", o.integrationRun)
	}
	for _, b := range integrationBins {
		fmt.Printf("==> Running integration tests in %s\n", b)
		if err := runBinaries([]string{b}, args, 1); err != nil {
			return err
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// integrationBinaries maps package paths to their compiled test binaries.
func integrationBinaries(testsDir string, pkgs []string) ([]string, error) {
	bins := make([]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		bin := filepath.Join(testsDir, filepath.FromSlash(pkg)+".test")
		if _, err := os.Stat(bin); err != nil {
			return nil, fmt.Errorf("integration binary not found at %s: %w", bin, err)
		}
		bins = append(bins, bin)
	}
	return bins, nil
}

func collectTestBinaries(root string) ([]string, error) {
	var bins []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".test") {
			bins = append(bins, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(bins)
	return bins, nil
}

func testArgs(verbose, short bool, count, testParallel int) []string {
	args := []string{}
	if verbose {
		args = append(args, "-test.v")
	}
	if short {
		args = append(args, "-test.short")
	}
	if count > 0 {
		args = append(args, fmt.Sprintf("-test.count=%d", count))
	}
	if testParallel > 0 {
		args = append(args, fmt.Sprintf("-test.parallel=%d", testParallel))
	}
	return args
}

func runBinaries(bins []string, args []string, parallel int) error {
	if len(bins) == 0 {
		return nil
	}
	if parallel < 1 {
		parallel = 1
	}
	sem := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, b := range bins {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			cmd := exec.Command(b, args...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			cmd.Env = os.Environ()
			// Run from the package directory next to the binary when it exists.
			cmd.Dir = "/app"
			if wd := strings.TrimSuffix(b, ".test"); wd != b {
				if fi, err := os.Stat(wd); err == nil && fi.IsDir() {
					cmd.Dir = wd
				}
			}
			fmt.Printf("[RUN] %s %s\n", b, strings.Join(args, " "))
			if err := cmd.Run(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("%s failed: %w", b, err)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return firstErr
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
