package adtools

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// mockLLMProvider 用于测试的 mock LLM 提供者
type mockLLMProvider struct {
	generateFunc func(ctx context.Context, prompt string) (string, error)
	systemFunc   func(ctx context.Context, system, prompt string) (string, error)
}

func (m *mockLLMProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, prompt)
	}
	return "", errors.New("mock generate function not set")
}

func (m *mockLLMProvider) GenerateWithSystem(ctx context.Context, system, prompt string) (string, error) {
	if m.systemFunc != nil {
		return m.systemFunc(ctx, system, prompt)
	}
	return "", errors.New("mock system function not set")
}

func TestGenerateJSON(t *testing.T) {
	Convey("GenerateJSON 能调用模型并解析出 JSON", t, func() {
		ctx := context.Background()

		Convey("围栏包裹带尾随逗号的响应能修复", func() {
			llm := &mockLLMProvider{
				generateFunc: func(ctx context.Context, prompt string) (string, error) {
					So(prompt, ShouldEqual, "list entities")
					return "```json\n{\"scenes\": [1, 2],}\n```", nil
				},
			}

			data, raw, err := GenerateJSON(ctx, llm, "", "list entities")

			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"scenes": [1, 2]}`)
			So(raw, ShouldContainSubstring, "```json")
		})

		Convey("system 非空时走带系统消息的调用", func() {
			llm := &mockLLMProvider{
				systemFunc: func(ctx context.Context, system, prompt string) (string, error) {
					So(system, ShouldEqual, "Respond only with valid JSON.")
					return `{"score": 80}`, nil
				},
			}

			data, _, err := GenerateJSON(ctx, llm, "Respond only with valid JSON.", "judge this")

			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"score": 80}`)
		})

		Convey("模型调用失败时原样返回错误，raw 为空", func() {
			llm := &mockLLMProvider{
				generateFunc: func(ctx context.Context, prompt string) (string, error) {
					return "", errors.New("rate limited")
				},
			}

			_, raw, err := GenerateJSON(ctx, llm, "", "anything")

			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "rate limited")
			So(raw, ShouldBeEmpty)
		})

		Convey("修复失败时返回原始响应供落盘", func() {
			llm := &mockLLMProvider{
				generateFunc: func(ctx context.Context, prompt string) (string, error) {
					return `half a {"json": [1,`, nil
				},
			}

			_, raw, err := GenerateJSON(ctx, llm, "", "anything")

			So(errors.Is(err, ErrJSONUnparseable), ShouldBeTrue)
			So(raw, ShouldEqual, `half a {"json": [1,`)
		})

		Convey("llm 为 nil 时报错", func() {
			_, _, err := GenerateJSON(ctx, nil, "", "anything")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "llm provider is required")
		})
	})
}
