package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	"github.com/hashicorp/go-cleanhttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
	"github.com/rios0rios0/repoarchiver/internal/domain/repositories"
)

const (
	serviceName       = "github"
	defaultGraphQLURL = "https://api.github.com/graphql"
	defaultRESTURL    = "https://api.github.com/"
)

const listRepositoriesQuery = `query ($organizationLogin: String!, $pageSize: Int!, $cursor: String) {
  organization(login: $organizationLogin) {
    repositories(first: $pageSize, after: $cursor, orderBy: {field: PUSHED_AT, direction: ASC}) {
      edges {
        cursor
        node {
          name
          url
          pushedAt
          owner {
            login
          }
        }
      }
    }
  }
}`

// SourceControlRepository implements repositories.SourceControlRepository
// for GitHub: listing goes through the GraphQL API, deletion through REST.
type SourceControlRepository struct {
	httpClient *http.Client
	graphqlURL string
	restURL    *url.URL
}

// NewSourceControlRepository creates a GitHub repository targeting api.github.com.
func NewSourceControlRepository() repositories.SourceControlRepository {
	restURL, _ := url.Parse(defaultRESTURL)
	return &SourceControlRepository{
		httpClient: cleanhttp.DefaultPooledClient(),
		graphqlURL: defaultGraphQLURL,
		restURL:    restURL,
	}
}

// NewSourceControlRepositoryWithEndpoints creates a GitHub repository against
// custom endpoints (GitHub Enterprise or a test server).
func NewSourceControlRepositoryWithEndpoints(
	httpClient *http.Client,
	graphqlURL, restURL string,
) (*SourceControlRepository, error) {
	if !strings.HasSuffix(restURL, "/") {
		restURL += "/"
	}
	parsed, err := url.Parse(restURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REST URL %q: %w", restURL, err)
	}
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
	}
	return &SourceControlRepository{
		httpClient: httpClient,
		graphqlURL: graphqlURL,
		restURL:    parsed,
	}, nil
}

// ListRepositories walks the organization's repositories page by page. The
// cursor of the next page is the cursor of the last edge of the current one.
// An empty page, or a page shorter than pageSize, ends the sequence.
func (it *SourceControlRepository) ListRepositories(
	ctx context.Context,
	credentials entities.SourceControlCredentials,
	organization string,
	pageSize int,
) iter.Seq2[entities.Repository, error] {
	return func(yield func(entities.Repository, error) bool) {
		cursor := ""
		for page := 1; ; page++ {
			edges, err := it.fetchPage(ctx, credentials, organization, pageSize, cursor)
			if err != nil {
				yield(entities.Repository{}, err)
				return
			}
			logger.Debugf("Fetched page %d of %q: %d repositories", page, organization, len(edges))

			for _, edge := range edges {
				if !yield(edge.Node.toEntity(), nil) {
					return
				}
			}

			if len(edges) == 0 || len(edges) < pageSize {
				return
			}
			cursor = edges[len(edges)-1].Cursor
			if cursor == "" {
				return
			}
		}
	}
}

// DeleteRepository issues DELETE /repos/{owner}/{name}. No retry.
func (it *SourceControlRepository) DeleteRepository(
	ctx context.Context,
	credentials entities.SourceControlCredentials,
	owner, name string,
) error {
	client := it.restClient(credentials)

	resp, err := client.Repositories.Delete(ctx, owner, name)
	if err == nil {
		return nil
	}

	var accepted *gh.AcceptedError
	if errors.As(err, &accepted) {
		return nil
	}

	if resp == nil || resp.Response == nil {
		return fmt.Errorf("failed to delete repository %s/%s: %w", owner, name, err)
	}
	return &entities.RemoteAPIError{
		Service:    serviceName,
		Operation:  "delete repository",
		Resource:   owner + "/" + name,
		StatusCode: resp.StatusCode,
		Payload:    errorPayload(err),
	}
}

func (it *SourceControlRepository) restClient(credentials entities.SourceControlCredentials) *gh.Client {
	transport := &gh.BasicAuthTransport{
		Username:  credentials.Username,
		Password:  credentials.Token,
		Transport: it.httpClient.Transport,
	}
	client := gh.NewClient(transport.Client())
	client.BaseURL = it.restURL
	return client
}

func (it *SourceControlRepository) fetchPage(
	ctx context.Context,
	credentials entities.SourceControlCredentials,
	organization string,
	pageSize int,
	cursor string,
) ([]repositoryEdge, error) {
	variables := queryVariables{
		OrganizationLogin: organization,
		PageSize:          pageSize,
	}
	if cursor != "" {
		variables.Cursor = &cursor
	}
	body, err := json.Marshal(queryRequest{Query: listRepositoriesQuery, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode repositories query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, it.graphqlURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build repositories query: %w", err)
	}
	req.Header.Set("Authorization", credentials.BasicAuthorization())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := it.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query repositories of %q: %w", organization, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read repositories response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &entities.RemoteAPIError{
			Service:    serviceName,
			Operation:  "list repositories",
			Resource:   organization,
			StatusCode: resp.StatusCode,
			Payload:    string(raw),
		}
	}

	var decoded queryResponse
	if unmarshalErr := json.Unmarshal(raw, &decoded); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to decode repositories response: %w", unmarshalErr)
	}
	if hasErrors(decoded.Errors) {
		return nil, &entities.RemoteAPIError{
			Service:    serviceName,
			Operation:  "list repositories",
			Resource:   organization,
			StatusCode: resp.StatusCode,
			Payload:    string(decoded.Errors),
		}
	}
	if decoded.Data.Organization == nil {
		return nil, &entities.RemoteAPIError{
			Service:    serviceName,
			Operation:  "list repositories",
			Resource:   organization,
			StatusCode: resp.StatusCode,
			Payload:    string(raw),
		}
	}

	return decoded.Data.Organization.Repositories.Edges, nil
}

type queryRequest struct {
	Query     string         `json:"query"`
	Variables queryVariables `json:"variables"`
}

type queryVariables struct {
	OrganizationLogin string  `json:"organizationLogin"`
	PageSize          int     `json:"pageSize"`
	Cursor            *string `json:"cursor,omitempty"`
}

type queryResponse struct {
	Data struct {
		Organization *struct {
			Repositories struct {
				Edges []repositoryEdge `json:"edges"`
			} `json:"repositories"`
		} `json:"organization"`
	} `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

type repositoryEdge struct {
	Cursor string         `json:"cursor"`
	Node   repositoryNode `json:"node"`
}

type repositoryNode struct {
	Name     string    `json:"name"`
	URL      string    `json:"url"`
	PushedAt time.Time `json:"pushedAt"`
	Owner    struct {
		Login string `json:"login"`
	} `json:"owner"`
}

func (n repositoryNode) toEntity() entities.Repository {
	return entities.Repository{
		Name:     n.Name,
		URL:      n.URL,
		PushedAt: n.PushedAt,
		Owner:    n.Owner.Login,
	}
}

// hasErrors reports whether the GraphQL "errors" member carries anything.
func hasErrors(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed != "" && trimmed != "null" && trimmed != "[]"
}

// errorPayload renders the GitHub error body, falling back to the error text.
func errorPayload(err error) string {
	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) {
		if encoded, marshalErr := json.Marshal(errResp); marshalErr == nil {
			return string(encoded)
		}
	}
	return err.Error()
}
