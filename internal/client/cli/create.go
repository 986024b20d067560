package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/gookit/color"

	"resourcehub/internal/client/models"
)

// CreateResource publishes the most recently uploaded file as a study
// resource. Prompts for the metadata, validates the draft locally, and sends
// it to the backend.
func (a *App) CreateResource(ctx context.Context) error {
	if a.lastUpload == nil {
		fmt.Fprintln(a.out, "Upload a file first (upload <path>)")
		return nil
	}

	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	subject, err := GetSimpleText(a.reader, "Subject (optional)", a.out)
	if err != nil {
		return err
	}
	semester, err := GetSimpleText(a.reader, "Semester (optional)", a.out)
	if err != nil {
		return err
	}
	courseCode, err := GetSimpleText(a.reader, "Course code (optional)", a.out)
	if err != nil {
		return err
	}
	tagLine, err := GetSimpleText(a.reader, "Tags, comma separated (optional)", a.out)
	if err != nil {
		return err
	}

	draft := models.ResourceDraft{
		Title:       title,
		Description: description,
		Subject:     subject,
		Semester:    semester,
		CourseCode:  courseCode,
		Tags:        splitTags(tagLine),
		Files: []models.ResourceFileRef{{
			FileID:   a.lastUpload.FileID,
			FileURL:  a.lastUpload.FileURL,
			Name:     a.lastUpload.Name,
			Size:     a.lastUpload.Size,
			MimeType: a.lastUpload.MimeType,
		}},
	}

	res, err := a.resources.Create(ctx, draft)
	if err != nil {
		fmt.Fprintln(a.out, color.Red.Render("Create failed: "+err.Error()))
		return err
	}

	a.lastUpload = nil
	fmt.Fprintln(a.out, color.Green.Render(
		fmt.Sprintf("Created resource %q (id %s)", res.Title, res.ID)))
	return nil
}

func splitTags(line string) []string {
	var tags []string
	for _, t := range strings.Split(line, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
