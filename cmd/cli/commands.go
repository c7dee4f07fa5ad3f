package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/limaJavier/courseplanning/pkg/metrics"
	"github.com/limaJavier/courseplanning/pkg/model"
	"github.com/limaJavier/courseplanning/pkg/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newGenerateCommand(app *application) *cobra.Command {
	var catalogFile, parametersFile, outFile, storeDirectory, label, metricsFile string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generates a plan from a catalog and scheduling parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := model.CatalogFromJson(catalogFile)
			if err != nil {
				return fmt.Errorf("cannot parse catalog file: %w", err)
			}
			parameters := model.NewParameters()
			if parametersFile != "" {
				if parameters, err = model.ParametersFromYaml(parametersFile); err != nil {
					return fmt.Errorf("cannot parse parameters file: %w", err)
				}
			}

			registry := prometheus.NewRegistry()
			recorder := metrics.NewRecorder(registry)

			start := time.Now()
			plan := model.NewGreedyScheduler(app.logger).Generate(catalog, parameters)
			recorder.ObserveGeneration(catalog, parameters, plan, time.Since(start))

			if outFile == "" {
				planJson, err := model.MarshalPlan(plan)
				if err != nil {
					return fmt.Errorf("an error occurred while building output json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(planJson))
			} else if err := model.PlanToJson(plan, outFile); err != nil {
				return err
			}

			if storeDirectory != "" {
				planStore, err := store.Open(storeDirectory)
				if err != nil {
					return err
				}
				defer planStore.Close()

				stored, err := planStore.Save(label, plan)
				if err != nil {
					return err
				}
				app.logger.Info().Str("id", stored.Id).Str("label", label).Msg("plan archived")
			}

			if metricsFile != "" {
				return metrics.WriteTextfile(metricsFile, registry)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "", "Path to the catalog file")
	cmd.Flags().StringVar(&parametersFile, "parameters", "", "Path to a YAML parameters file; defaults apply when empty")
	cmd.Flags().StringVar(&outFile, "out", "", "Path to the file where the plan will be written; if empty, it'll be written into the Standard Output")
	cmd.Flags().StringVar(&storeDirectory, "store", "", "Directory of a plan store where the plan will also be archived")
	cmd.Flags().StringVar(&label, "label", "", "Label of the archived plan")
	cmd.Flags().StringVar(&metricsFile, "metrics", "", "Path to a file where run metrics will be written")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func newValidateCommand(app *application) *cobra.Command {
	var catalogFile, planFile, storeDirectory, planId, metricsFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Checks a plan file or an archived plan against a catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (planFile == "") == (storeDirectory == "") {
				return errors.New("either a plan file or a plan store must be specified")
			} else if storeDirectory != "" && planId == "" {
				return errors.New("an archived plan id must be specified")
			}

			catalog, err := model.CatalogFromJson(catalogFile)
			if err != nil {
				return fmt.Errorf("cannot parse catalog file: %w", err)
			}
			plan, err := loadPlan(planFile, storeDirectory, planId)
			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			recorder := metrics.NewRecorder(registry)

			start := time.Now()
			report := model.NewPlanValidator().Validate(catalog, plan)
			recorder.ObserveValidation(report, time.Since(start))

			fmt.Fprint(cmd.OutOrStdout(), report.String())
			app.logger.Debug().Bool("ok", report.OK).Int("diagnostics", len(report.Diagnostics)).Msg("plan validated")

			if metricsFile != "" {
				if err := metrics.WriteTextfile(metricsFile, registry); err != nil {
					return err
				}
			}
			if !report.OK {
				return errInvalidPlan
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "", "Path to the catalog file")
	cmd.Flags().StringVar(&planFile, "plan", "", "Path to the plan file")
	cmd.Flags().StringVar(&storeDirectory, "store", "", "Directory of the plan store holding the plan")
	cmd.Flags().StringVar(&planId, "id", "", "Id of the archived plan")
	cmd.Flags().StringVar(&metricsFile, "metrics", "", "Path to a file where run metrics will be written")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func loadPlan(planFile, storeDirectory, planId string) (model.Plan, error) {
	if planFile != "" {
		plan, err := model.PlanFromJson(planFile)
		if err != nil {
			return nil, fmt.Errorf("cannot parse plan file: %w", err)
		}
		return plan, nil
	}

	planStore, err := store.Open(storeDirectory)
	if err != nil {
		return nil, err
	}
	defer planStore.Close()

	stored, err := planStore.Load(planId)
	if err != nil {
		return nil, err
	}
	return stored.Plan, nil
}

func newOrderCommand(app *application) *cobra.Command {
	var catalogFile string

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Prints the catalog's courses in prerequisite order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := model.CatalogFromJson(catalogFile)
			if err != nil {
				return fmt.Errorf("cannot parse catalog file: %w", err)
			}

			order, err := model.PrerequisiteOrder(catalog)
			for _, courseId := range order {
				fmt.Fprintln(cmd.OutOrStdout(), courseId)
			}

			var cycleErr model.PrerequisiteCycleError
			if errors.As(err, &cycleErr) {
				app.logger.Warn().Strs("unresolved", cycleErr.Unresolved).Msg(cycleErr.Error())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "", "Path to the catalog file")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func newShowCommand(app *application) *cobra.Command {
	var catalogFile string

	cmd := &cobra.Command{
		Use:   "show [course...]",
		Short: "Prints courses and their offerings; every course when none is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := model.CatalogFromJson(catalogFile)
			if err != nil {
				return fmt.Errorf("cannot parse catalog file: %w", err)
			}

			courseIds := args
			if len(courseIds) == 0 {
				courseIds = catalog.Ids()
			}
			for _, courseId := range courseIds {
				course, ok := catalog.Course(courseId)
				if !ok {
					return fmt.Errorf("course %v does not exist in the catalog", courseId)
				}
				fmt.Fprint(cmd.OutOrStdout(), describeCourse(course))
			}
			app.logger.Debug().Int("courses", len(courseIds)).Msg("courses shown")
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "", "Path to the catalog file")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func describeCourse(course model.Course) string {
	var builder strings.Builder

	kind := "elective"
	if course.Required {
		kind = "required"
	}
	fmt.Fprintf(&builder, "%v %v (%v credits, %v)\n", course.Id, course.Name, course.Credit, kind)
	if len(course.Prerequisites) > 0 {
		fmt.Fprintf(&builder, "  prerequisites: %v\n", strings.Join(course.Prerequisites, ", "))
	}
	for _, offering := range course.Offerings {
		teacher := lo.Ternary(offering.Teacher == "", "unknown teacher", offering.Teacher)
		fmt.Fprintf(&builder, "  %v, %v: %v\n", offering.Id, teacher, offering.TimeSlotsString())
	}
	return builder.String()
}

func newConflictsCommand(app *application) *cobra.Command {
	var catalogFile, planFile, parametersFile string

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Prints the credits of each term and whether it collides with blocked time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := model.CatalogFromJson(catalogFile)
			if err != nil {
				return fmt.Errorf("cannot parse catalog file: %w", err)
			}
			plan, err := model.PlanFromJson(planFile)
			if err != nil {
				return fmt.Errorf("cannot parse plan file: %w", err)
			}
			parameters, err := model.ParametersFromYaml(parametersFile)
			if err != nil {
				return fmt.Errorf("cannot parse parameters file: %w", err)
			}

			for term := range model.MaxTerms {
				courses := plan.ForTerm(term)
				if len(courses) == 0 {
					continue
				}
				hasConflict := plan.HasBlockedConflict(catalog, parameters, term)
				credits := plan.CreditSum(catalog, term)
				if hasConflict {
					app.logger.Warn().Int("term", term).Msg("term meets during blocked time")
				}
				if credits > parameters.CreditCaps[term] {
					app.logger.Warn().Int("term", term).Int("credits", credits).Int("cap", parameters.CreditCaps[term]).Msg("term exceeds its credit cap")
				}

				blocked := lo.Ternary(hasConflict, "blocked time conflict", "no conflict")
				fmt.Fprintf(cmd.OutOrStdout(), "term %v: %v credits (cap %v), %v\n",
					term, credits, parameters.CreditCaps[term], blocked)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "", "Path to the catalog file")
	cmd.Flags().StringVar(&planFile, "plan", "", "Path to the plan file")
	cmd.Flags().StringVar(&parametersFile, "parameters", "", "Path to the YAML parameters file")
	_ = cmd.MarkFlagRequired("catalog")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("parameters")
	return cmd
}

func newPlansCommand(app *application) *cobra.Command {
	var storeDirectory, deleteId string

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Lists the plans of a plan store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			planStore, err := store.Open(storeDirectory)
			if err != nil {
				return err
			}
			defer planStore.Close()

			if deleteId != "" {
				if err := planStore.Delete(deleteId); err != nil {
					return err
				}
				app.logger.Info().Str("id", deleteId).Msg("plan deleted")
				return nil
			}

			plans, err := planStore.List()
			if err != nil {
				return err
			}
			for _, stored := range plans {
				fmt.Fprintf(cmd.OutOrStdout(), "%v\t%v\t%v courses\t%v\n",
					stored.Id, stored.CreatedAt.Format(time.RFC3339), len(stored.Plan.Scheduled()), stored.Label)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storeDirectory, "store", "", "Directory of the plan store")
	cmd.Flags().StringVar(&deleteId, "delete", "", "Id of a plan to delete instead of listing")
	_ = cmd.MarkFlagRequired("store")
	return cmd
}
