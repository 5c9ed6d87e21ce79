package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"vp-madrs/internal/config"
	"vp-madrs/internal/db"
	"vp-madrs/internal/export"
	"vp-madrs/internal/madrs"
	"vp-madrs/internal/repository"
	"vp-madrs/internal/service"
)

// Etiquetas cortas para la matriz de correlacion en consola.
var shortLabels = map[madrs.Item]string{
	madrs.ItemReportedSadness:           "RepSad",
	madrs.ItemApparentSadness:           "AppSad",
	madrs.ItemInnerTension:              "InTen",
	madrs.ItemReducedSleep:              "Sleep",
	madrs.ItemReducedAppetite:           "Appet",
	madrs.ItemConcentrationDifficulties: "Conc",
	madrs.ItemLassitude:                 "Lass",
	madrs.ItemInabilityToFeel:           "Feel",
	madrs.ItemPessimisticThoughts:       "Pessm",
	madrs.ItemSuicidalThoughts:          "Suic",
}

func main() {
	n := flag.Int("n", 500, "number of profiles to generate")
	seed := flag.Uint64("seed", 42, "random seed for reproducibility")
	outputDir := flag.String("output-dir", "generated_profiles", "output directory for CSV/JSON")
	persist := flag.Bool("persist", false, "also store profiles in the database (requires DATABASE_URL)")
	flag.Parse()

	ctx := context.Background()
	_ = godotenv.Load()

	logger := zap.NewExample()
	defer logger.Sync()

	var repo repository.ProfileRepository
	if *persist {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatal(err)
		}
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		repo = repository.NewPgProfileRepository(pool)
	}

	generatorSvc := service.NewGeneratorService(repo, logger)
	batchSvc := service.NewBatchService(generatorSvc, logger)

	result, err := batchSvc.Run(ctx, service.BatchInput{N: *n, Seed: *seed, Persist: *persist})
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		log.Fatal(err)
	}
	csvPath := filepath.Join(*outputDir, "profiles_madrs.csv")
	if err := export.WriteCSV(csvPath, result.Rows); err != nil {
		log.Fatal(err)
	}
	jsonPath := filepath.Join(*outputDir, "profiles_madrs.json")
	if err := export.WriteJSON(jsonPath, result.Rows); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Generated %d/%d profiles (%d failed)\n", result.Generated, *n, result.Failed)
	fmt.Printf("Saved CSV:  %s\n", csvPath)
	fmt.Printf("Saved JSON: %s\n", jsonPath)
	printSummary(result.Summary)
}

func printSummary(s madrs.Summary) {
	fmt.Printf("\n=== Batch summary: n=%d ===\n", s.N)
	fmt.Printf("%-28s %6s %6s\n", "Item", "Mean", "SD")
	fmt.Println("------------------------------------------")
	for _, item := range s.Items {
		fmt.Printf("%-28s %6.2f %6.2f\n", item.Item, item.Mean, item.StdDev)
	}
	fmt.Printf("\nTotal score mean: %.2f\n", s.TotalMean)
	fmt.Printf("Total score SD:   %.2f\n", s.TotalStdDev)

	fmt.Printf("\nSeverity bands: low=%d moderate=%d high=%d\n",
		s.BandCounts[madrs.BandLow], s.BandCounts[madrs.BandModerate], s.BandCounts[madrs.BandHigh])

	if s.Correlation == nil {
		return
	}
	items := madrs.Items()
	fmt.Printf("\nInter-item correlation matrix:\n%8s", "")
	for _, item := range items {
		fmt.Printf("%8s", shortLabels[item])
	}
	fmt.Println()
	for i, item := range items {
		fmt.Printf("%8s", shortLabels[item])
		for j := range items {
			fmt.Printf("%8.2f", s.Correlation[i][j])
		}
		fmt.Println()
	}
}
