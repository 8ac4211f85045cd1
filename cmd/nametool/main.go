// Command nametool prints how names map onto the globe.
//
//	nametool "Ada Lovelace" "Grace Hopper"
//	nametool -ref "https://example.com/?name=Ada%20Lovelace"
//	nametool -share "Ada Lovelace"
//	nametool -config config.yaml -share "Ada Lovelace"
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"name-locator-service/internal/config"
	"name-locator-service/internal/domain"
	"name-locator-service/internal/services"
	"name-locator-service/internal/session"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	ref := flag.String("ref", "", "shareable reference to decode instead of names")
	share := flag.Bool("share", false, "print a shareable reference for each name")
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	publicURL, err := sharePublicURL(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	names := flag.Args()
	if *ref != "" {
		name, ok, err := session.ParseReference(*ref)
		if err != nil {
			log.Fatal(err)
		}
		if !ok {
			log.Fatalf("reference %q has no %s field", *ref, session.ReferenceField)
		}
		names = []string{name}
	}

	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "usage: nametool [-share] name... | nametool -ref URL")
		os.Exit(2)
	}

	records := make([]domain.DerivedLocation, 0, len(names))
	for _, n := range names {
		loc := domain.Derive(n)
		records = append(records, loc)

		if err := printBreakdown(os.Stdout, loc); err != nil {
			log.Fatal(err)
		}
		if *share {
			link, err := session.BuildReference(publicURL, n)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Fprintf(os.Stdout, "Share:                 %s\n", link)
		}
		fmt.Fprintln(os.Stdout)
	}

	for i, d := range services.Spread(records) {
		fmt.Fprintf(os.Stdout, "%q -> %q: %.1f km\n", records[i].SourceText, records[i+1].SourceText, d)
	}
}

// sharePublicURL resolves the share base the same way the server does.
func sharePublicURL(configPath string) (string, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return "", err
	}
	return cfg.Share.PublicURL, nil
}

func printBreakdown(w io.Writer, loc domain.DerivedLocation) error {
	_, err := fmt.Fprintf(w,
		"Entered Name:          %s\n"+
			"Full SHA-256 Hash:     %s\n"+
			"Latitude Segment:      %s -> %d\n"+
			"Longitude Segment:     %s -> %d\n"+
			"Normalized Latitude:   %v°\n"+
			"Normalized Longitude:  %v°\n"+
			"S2 Cell:               %s\n",
		loc.SourceText,
		loc.DigestHex,
		loc.LatFieldHex, loc.LatField,
		loc.LonFieldHex, loc.LonField,
		loc.Latitude,
		loc.Longitude,
		services.CellToken(loc.Coordinates(), services.DefaultCellLevel),
	)
	if err != nil {
		return fmt.Errorf("print breakdown: %w", err)
	}
	return nil
}
