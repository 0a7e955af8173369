// Package naming derives Dapla GCP resource names from a team's project ID.
//
// A project ID has the form "<project-name>-<unique-id>". On Kuben the
// second-to-last hyphen segment of the ID is an environment marker ("t" for
// test, "p" for prod) and bucket names carry the environment as a suffix;
// legacy (ZONE) projects have no marker and their buckets no suffix.
package naming

import (
	"errors"
	"fmt"
	"strings"
)

// Environment is the deployment environment encoded in a Kuben project ID.
type Environment string

const (
	EnvTest Environment = "test"
	EnvProd Environment = "prod"
)

// ErrInvalidProjectID indicates a project ID that does not follow the
// expected "<project-name>-<unique-id>" convention.
var ErrInvalidProjectID = errors.New("invalid project ID")

// ExtractProjectName returns the project name part of a project ID by
// dropping the trailing "-<unique-id>" group.
func ExtractProjectName(projectID string) (string, error) {
	idx := strings.LastIndex(projectID, "-")
	if idx < 0 || idx == len(projectID)-1 {
		return "", fmt.Errorf("%w: %s, expected format <project-name>-<unique-id>", ErrInvalidProjectID, projectID)
	}
	return projectID[:idx], nil
}

// ExtractEnvironment returns the environment encoded in a Kuben project ID.
// The second-to-last hyphen segment must be the marker "t" or "p".
func ExtractEnvironment(projectID string) (Environment, error) {
	segments := strings.Split(projectID, "-")
	if len(segments) < 2 {
		return "", fmt.Errorf("%w: %s has no environment marker", ErrInvalidProjectID, projectID)
	}
	switch segments[len(segments)-2] {
	case "t":
		return EnvTest, nil
	case "p":
		return EnvProd, nil
	default:
		return "", fmt.Errorf("%w: %s has no environment marker", ErrInvalidProjectID, projectID)
	}
}

// SourceDataBucketID returns the team's source data ("kilde") bucket.
// Kuben buckets drop the project name's env marker and append the
// environment instead; legacy buckets use the project name as is.
func SourceDataBucketID(projectName string, env Environment, kuben bool) string {
	if kuben {
		return fmt.Sprintf("ssb-%s-data-kilde-%s", trimEnvMarker(projectName), env)
	}
	return fmt.Sprintf("ssb-%s-data-kilde", projectName)
}

// SharedDataBucketID returns the team's shared data ("produkt") bucket.
// Shared data buckets only exist on Kuben.
func SharedDataBucketID(projectName string, env Environment) string {
	return fmt.Sprintf("ssb-%s-data-produkt-%s", trimEnvMarker(projectName), env)
}

// NormalizeSourceName rewrites a source name to the form used by GCP
// resources: Kildomaten and Delomaten are provisioned with dashes as the
// separator instead of underscores.
func NormalizeSourceName(sourceName string) string {
	return strings.ReplaceAll(sourceName, "_", "-")
}

// SourceUpdateTopicID returns the Kildomaten update topic for a source.
func SourceUpdateTopicID(sourceName string) string {
	return "update-" + NormalizeSourceName(sourceName)
}

// SharedUpdateTopicID returns the Delomaten update topic for a shared data
// processor.
func SharedUpdateTopicID(sourceName string) string {
	return "delomaten-update-" + NormalizeSourceName(sourceName)
}

// trimEnvMarker drops the segment after the last hyphen of a Kuben project
// name. Names without a hyphen are returned unchanged.
func trimEnvMarker(projectName string) string {
	if idx := strings.LastIndex(projectName, "-"); idx >= 0 {
		return projectName[:idx]
	}
	return projectName
}
