package catalog

import (
	"net/url"
	"strings"
)

const (
	// DefaultIndexURL is the published Smart Data Models catalog listing.
	DefaultIndexURL = "https://raw.githubusercontent.com/smart-data-models/data-models/master/specs/AllSubjects/official_list_data_models.json"

	// DefaultModelURLTemplate locates a model document from its repository and model name.
	DefaultModelURLTemplate = "https://raw.githubusercontent.com/smart-data-models/dataModel.{repo}/master/{model}/model.yaml"
)

// ModelURL expands the {repo} and {model} placeholders of template.
// Values are path-escaped so that names with spaces stay valid URLs.
func ModelURL(template, repo, model string) string {
	r := strings.NewReplacer(
		"{repo}", url.PathEscape(repo),
		"{model}", url.PathEscape(model),
	)
	return r.Replace(template)
}
