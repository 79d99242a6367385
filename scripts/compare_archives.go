//go:build ignore

package main

import (
	"fmt"
	"os"
	"sort"

	"GossipQuorum/internal/report"
	"GossipQuorum/internal/storage"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <archive1_path> <archive2_path>\n", os.Args[0])
		os.Exit(1)
	}

	path1 := os.Args[1]
	path2 := os.Args[2]

	runs1, err := collectChecksums(path1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read archive1: %v\n", err)
		os.Exit(1)
	}

	runs2, err := collectChecksums(path2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read archive2: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Archive1 (%s): %d runs\n", path1, len(runs1))
	fmt.Printf("Archive2 (%s): %d runs\n", path2, len(runs2))

	missing1, missing2, different := compare(runs1, runs2)

	if len(missing1) == 0 && len(missing2) == 0 && len(different) == 0 {
		fmt.Println("\n✓ Archives are identical!")
		os.Exit(0)
	}

	fmt.Println("\n✗ Archives differ:")
	printKeys("Runs in archive1 but not in archive2", missing1)
	printKeys("Runs in archive2 but not in archive1", missing2)
	printKeys("Runs with different results", different)

	os.Exit(1)
}

// collectChecksums decodes every report, which also verifies its checksum.
func collectChecksums(path string) (map[string][32]byte, error) {
	a, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	runs := make(map[string][32]byte)

	err = a.Iterate(func(key string, data []byte) error {
		rep, err := report.Decode(data)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}

		runs[key] = rep.Checksum
		return nil
	})

	return runs, err
}

func compare(runs1, runs2 map[string][32]byte) (missing1, missing2, different []string) {
	for key, sum1 := range runs1 {
		sum2, ok := runs2[key]
		if !ok {
			missing1 = append(missing1, key)
			continue
		}
		if sum1 != sum2 {
			different = append(different, key)
		}
	}

	for key := range runs2 {
		if _, ok := runs1[key]; !ok {
			missing2 = append(missing2, key)
		}
	}

	sort.Strings(missing1)
	sort.Strings(missing2)
	sort.Strings(different)

	return
}

func printKeys(title string, keys []string) {
	if len(keys) == 0 {
		return
	}

	fmt.Printf("  - %s: %d\n", title, len(keys))
	for _, key := range keys {
		fmt.Printf("      %s\n", key)
	}
}
