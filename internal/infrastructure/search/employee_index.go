package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
	"github.com/oksasatya/employee-hierarchy-api/internal/infrastructure/database"
)

// EmployeeIndex mirrors employees into Elasticsearch and answers free text searches.
type EmployeeIndex struct {
	es      *elasticsearch.Client
	index   string
	logger  *logrus.Logger
	timeout time.Duration
}

func NewEmployeeIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *EmployeeIndex {
	return &EmployeeIndex{es: es, index: index, logger: logger, timeout: 3 * time.Second}
}

type employeeDoc struct {
	ID           string  `json:"id"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	FullName     string  `json:"fullName"`
	Email        string  `json:"email"`
	IsSupervisor bool    `json:"isSupervisor"`
	SupervisorID *string `json:"supervisorId,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

func toDoc(e *entity.Employee) employeeDoc {
	d := employeeDoc{
		ID:           e.ID.String(),
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		FullName:     e.FullName(),
		Email:        e.Email,
		IsSupervisor: e.IsSupervisor,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339Nano),
	}
	if e.SupervisorID != nil {
		s := e.SupervisorID.String()
		d.SupervisorID = &s
	}
	return d
}

// AfterCommit keeps the index in step with committed employee writes.
func (x *EmployeeIndex) AfterCommit(ctx context.Context, changes []database.Change) {
	for _, c := range changes {
		e, ok := c.Entity.(*entity.Employee)
		if !ok {
			continue
		}
		var err error
		if c.Op == database.OpRemoved {
			err = x.Delete(ctx, e.ID)
		} else {
			err = x.Index(ctx, e)
		}
		if err != nil && x.logger != nil {
			x.logger.WithError(err).WithField("employee_id", e.ID).Warn("es sync failed")
		}
	}
}

func (x *EmployeeIndex) Index(ctx context.Context, e *entity.Employee) error {
	b, err := json.Marshal(toDoc(e))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: e.ID.String(), Body: bytes.NewReader(b), Refresh: "false"}
	return x.do(ctx, req)
}

func (x *EmployeeIndex) Delete(ctx context.Context, id uuid.UUID) error {
	req := esapi.DeleteRequest{Index: x.index, DocumentID: id.String()}
	return x.do(ctx, req)
}

func (x *EmployeeIndex) do(ctx context.Context, req esapi.Request) error {
	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es response: %s", res.Status())
	}
	return nil
}

// SearchEmployees performs a multi_match search over names and email.
func (x *EmployeeIndex) SearchEmployees(ctx context.Context, q string, size int) ([]uuid.UUID, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "fullName^2", "firstName", "lastName"},
			},
		},
		"_source": []string{"id"},
		"size":    size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	res, err := x.es.Search(x.es.Search.WithContext(c), x.es.Search.WithIndex(x.index), x.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if res.StatusCode == 404 {
			return []uuid.UUID{}, nil
		}
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]uuid.UUID, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		id, err := uuid.Parse(h.ID)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}
