// Package export renders a final job list to CSV. It is a pure, stateless
// transformation of the ranked sequence the aggregator produced.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Vincent-Ngobeh/job-aggregator/internal/model"
)

// header is the fixed CSV column set, in output order.
var header = []string{
	"title",
	"company",
	"salary_min",
	"salary_max",
	"location",
	"remote",
	"description",
	"apply_url",
	"careers_search_url",
	"source",
	"date_posted",
}

// Write renders the jobs as CSV to w: one header row, one row per job.
// Absent optional fields render as empty strings, an absent remote status
// renders as "Unknown", and newlines inside descriptions collapse to
// spaces.
func Write(w io.Writer, jobs []model.Job) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, job := range jobs {
		if err := cw.Write(row(job)); err != nil {
			return fmt.Errorf("write csv row for %q: %w", job.Title, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ToCSV renders the jobs as a CSV string.
func ToCSV(jobs []model.Job) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, jobs); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func row(job model.Job) []string {
	remote := string(job.Remote)
	if remote == "" {
		remote = string(model.RemoteUnknown)
	}

	description := strings.ReplaceAll(job.Description, "\n", " ")
	description = strings.ReplaceAll(description, "\r", " ")

	datePosted := ""
	if job.DatePosted != nil {
		datePosted = job.DatePosted.String()
	}

	return []string{
		job.Title,
		job.Company,
		optionalInt(job.SalaryMin),
		optionalInt(job.SalaryMax),
		job.Location,
		remote,
		description,
		job.ApplyURL,
		job.CareersSearchURL,
		string(job.Source),
		datePosted,
	}
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
