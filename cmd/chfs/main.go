// chfs reconciles the CHFS 2017 household and individual extracts into an
// analysis table and runs the sibling/debt regressions against it.
//
// Usage:
//
//	chfs run --hh chfs2017_hh.dta --ind chfs2017_ind.dta --out processed.csv
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/invertedv/chfs"
	"github.com/invertedv/chfs/model"
	"github.com/invertedv/chfs/reconcile"
	"github.com/invertedv/chfs/stata"
)

func main() {
	// .env may hold the ClickHouse credentials; absence is fine
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "chfs",
		Usage: "reconcile CHFS 2017 extracts and estimate the sibling/debt models",
		Commands: []*cli.Command{
			runCommand(),
		},
	}

	if e := app.Run(os.Args); e != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", e)
		os.Exit(1)
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "run the full pipeline: load, reconcile, model, save",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "hh",
				Usage:    "household extract (.dta or .csv)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "ind",
				Usage:    "individual extract (.dta or .csv)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "CSV to write the analysis table to",
			},
			&cli.BoolFlag{
				Name:  "no-models",
				Usage: "skip the regression pass",
			},
			&cli.StringFlag{
				Name:    "ch-host",
				Usage:   "ClickHouse host:port; empty skips the database save",
				EnvVars: []string{"CHFS_CH_HOST"},
			},
			&cli.StringFlag{
				Name:    "ch-database",
				Value:   "chfs",
				EnvVars: []string{"CHFS_CH_DATABASE"},
			},
			&cli.StringFlag{
				Name:    "ch-user",
				Value:   "default",
				EnvVars: []string{"CHFS_CH_USER"},
			},
			&cli.StringFlag{
				Name:    "ch-password",
				EnvVars: []string{"CHFS_CH_PASSWORD"},
			},
			&cli.StringFlag{
				Name:    "ch-table",
				Value:   "chfs.siblingsDebt",
				EnvVars: []string{"CHFS_CH_TABLE"},
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	log.WithField("file", c.String("hh")).Info("loading household extract")
	hh, e := stata.Load(c.String("hh"))
	if e != nil {
		return e
	}
	log.WithFields(log.Fields{"rows": hh.RowCount(), "cols": hh.ColumnCount()}).Info("household extract loaded")

	log.WithField("file", c.String("ind")).Info("loading individual extract")
	ind, e := stata.Load(c.String("ind"))
	if e != nil {
		return e
	}
	log.WithFields(log.Fields{"rows": ind.RowCount(), "cols": ind.ColumnCount()}).Info("individual extract loaded")

	out, rpt, e := reconcile.Run(hh, ind)
	if e != nil {
		return e
	}

	log.WithFields(log.Fields{
		"respondents": rpt.Respondents,
		"underage":    rpt.UnderageDropped,
		"households":  rpt.HeadHouseholds,
		"synthesized": rpt.SynthesizedColumns,
	}).Info("reconciliation done")

	if rpt.DuplicateJoinKeys > 0 {
		log.WithField("dupKeys", rpt.DuplicateJoinKeys).Warn("duplicate hhid values on the head-proxy side of the join")
	}

	for _, nm := range reconcile.RegressionVars {
		if rpt.Missing[nm] > 0 {
			log.WithFields(log.Fields{"variable": nm, "missing": rpt.Missing[nm],
				"pct": fmt.Sprintf("%.1f", rpt.MissingPct(nm))}).Info("missing values")
		}
	}

	if !c.Bool("no-models") {
		if e = runModels(out); e != nil {
			return e
		}
	}

	if fileName := c.String("out"); fileName != "" {
		if e = chfs.NewFiles().Save(fileName, out); e != nil {
			return e
		}
		log.WithField("file", fileName).Info("analysis table saved")
	}

	if host := c.String("ch-host"); host != "" {
		db := chfs.OpenCH(host, c.String("ch-database"), c.String("ch-user"), c.String("ch-password"))
		defer func() { _ = db.Close() }()

		if e = chfs.NewDialect(db).Save(c.String("ch-table"), out, true); e != nil {
			return e
		}
		log.WithField("table", c.String("ch-table")).Info("analysis table saved to ClickHouse")
	}

	return nil
}

// runModels reproduces the estimation pass: OLS, ridge and a robust Huber
// fit on the winsorized ratio, OLS and ridge on its log, with VIF
// diagnostics and descriptives over each model sample.
func runModels(out *chfs.Table) error {
	ivs := []string{"head_siblings", "head_age", "head_is_male", "head_educ",
		"head_is_married", "head_health", "has_business", "num_houses", "log_total_assets"}

	for _, dv := range []string{"debt_ratio_winsorized", "log_debt_ratio_winsorized"} {
		frame, e := model.NewFrame(out, dv, ivs)
		if e != nil {
			return e
		}

		log.WithFields(log.Fields{"dv": dv, "n": frame.N(), "dropped": frame.Dropped()}).Info("model frame")

		ols, e := model.OLS(frame)
		if e != nil {
			log.WithField("dv", dv).WithError(e).Warn("OLS failed")
			continue
		}
		fmt.Printf("\nDV = %s\n%v", dv, ols)

		vif, e := model.VIF(frame)
		if e == nil {
			for nm, v := range vif {
				if v > 5 {
					log.WithFields(log.Fields{"variable": nm, "vif": fmt.Sprintf("%.1f", v)}).Warn("possible collinearity")
				}
			}
		}

		ridge, e := model.RidgeCV(frame, nil)
		if e != nil {
			log.WithField("dv", dv).WithError(e).Warn("ridge failed")
			continue
		}
		fmt.Printf("%v", ridge)

		if dv == "debt_ratio_winsorized" {
			hub, eHub := model.Huber(frame)
			if eHub != nil {
				log.WithField("dv", dv).WithError(eHub).Warn("robust fit failed")
			} else {
				fmt.Printf("%v", hub)
			}
		}

		// descriptives over the listwise-deleted sample the fits used
		for _, s := range frame.Describe() {
			fmt.Println(s)
		}
	}

	return nil
}
