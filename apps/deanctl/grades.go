package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/tvqdev/deanboard/core/grade"
)

func (cli *commandLine) grades(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}

	setCmd := flag.NewFlagSet("grades set", flag.ContinueOnError)
	setEnrollment := setCmd.Int("enrollment", 0, "enrollment id (see classes grades)")
	setType := setCmd.String("type", "", "midterm|final")
	setScore := setCmd.Float64("score", -1, "score on the 10 scale")

	updateCmd := flag.NewFlagSet("grades update", flag.ContinueOnError)
	updateID := updateCmd.Int("id", 0, "grade id")
	updateType := updateCmd.String("type", "", "midterm|final")
	updateScore := updateCmd.Float64("score", -1, "score on the 10 scale")

	switch args[0] {
	case "set":
		if err := setCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *setEnrollment == 0 || *setType == "" || *setScore < 0 {
			setCmd.Usage()
			return errHelp
		}
		g, err := cli.client.CreateGrade(ctx, grade.NewGrade{
			EnrollmentID: *setEnrollment, GradeType: *setType, Score: *setScore,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Recorded %s %.1f (weight %.0f%%) for enrollment %d.\n",
			g.GradeType, g.Score, g.Weight*100, g.EnrollmentID)
		return nil

	case "update":
		if err := updateCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *updateID == 0 || *updateType == "" || *updateScore < 0 {
			updateCmd.Usage()
			return errHelp
		}
		g, err := cli.client.UpdateGrade(ctx, *updateID, grade.UpdateGrade{
			GradeType: *updateType, Score: *updateScore,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Updated grade %d: %s %.1f.\n", g.ID, g.GradeType, g.Score)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}
