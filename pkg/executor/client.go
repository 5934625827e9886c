package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/codearena/arena_controller/model"
	"github.com/codearena/arena_controller/pkg/errors"
)

const executePath = "/api/v1/execute"

type ExecuteRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Stdin    string `json:"stdin"`
}

// ExecuteResult 单个测试用例的执行结果, status 由执行服务裁定资源超限类判定
type ExecuteResult struct {
	Status          model.SubmissionStatus `json:"status"`
	Stdout          string                 `json:"stdout"`
	Stderr          string                 `json:"stderr"`
	ExitCode        int                    `json:"exit_code"`
	ExecutionTimeMs int                    `json:"execution_time_ms"`
	MemoryUsedKb    int                    `json:"memory_used_kb"`
}

// Client 沙箱执行服务客户端, 每个测试用例一次调用
type Client interface {
	Execute(ctx context.Context, req *ExecuteRequest) (*ExecuteResult, error)
}

type HTTPClient struct {
	baseURL string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *HTTPClient) Execute(ctx context.Context, req *ExecuteRequest) (*ExecuteResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("Execute failed at Marshal: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+executePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("Execute failed at NewRequestWithContext: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, errors.ExecutorUnreachable)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ExecutorUnreachable)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.ExecutorUnreachable, "executor returned status %d: %s", resp.StatusCode, string(data))
	}

	var result ExecuteResult
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("Execute failed at Unmarshal: %w", err)
	}
	return &result, nil
}
