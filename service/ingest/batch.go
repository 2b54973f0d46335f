package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// 单个文件的提取时限。构造恶意的文件（如页面树成环的PDF）会让
// 底层解码器死循环且不响应context，必须由外部看门狗兜底
var extractTimeout = 30 * time.Second

// Result 单个文件的提取结果，Err非空时Text为空
type Result struct {
	Name string
	Text string
	Err  error
}

// Sentinel 渲染为兼容旧契约的字符串：失败时返回内嵌文件名和错误信息的占位串
func (r Result) Sentinel() string {
	if r.Err != nil {
		return fmt.Sprintf("[Error parsing %s: %v]", r.Name, r.Err)
	}
	return r.Text
}

// Texts 将整批结果渲染为字符串列表，与输入文件一一对应
func Texts(results []Result) []string {
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Sentinel()
	}
	return texts
}

// ExtractBatch 逐个提取文件文本，返回与输入等长且顺序一致的结果列表
// 单个文件失败只记录在对应Result中，不会中断整批处理。
// 顺序执行保证同一时刻只有一个文件的解码缓冲存活，限制峰值内存。
func ExtractBatch(ctx context.Context, registry *Registry, files []File) []Result {
	results := make([]Result, len(files))
	for i, f := range files {
		results[i] = extractOne(ctx, registry, f)
	}
	return results
}

// ExtractBatchParallel 有界并发版本，结果仍按输入顺序返回
func ExtractBatchParallel(ctx context.Context, registry *Registry, files []File, workers int) []Result {
	if workers <= 1 || len(files) <= 1 {
		return ExtractBatch(ctx, registry, files)
	}
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]Result, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = extractOne(ctx, registry, files[i])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func extractOne(ctx context.Context, registry *Registry, f File) Result {
	extractor, err := registry.Resolve(f.MIMEType, f.Name)
	if err != nil {
		slog.Warn("no extractor for file",
			"file", f.Name,
			"declared_type", f.MIMEType,
		)
		return Result{Name: f.Name, Err: err}
	}

	text, err := runExtract(ctx, extractor, f.Data)
	if err != nil {
		slog.Warn("failed to extract file",
			"file", f.Name,
			"extractor", extractor.Name(),
			"err", err,
		)
		return Result{Name: f.Name, Err: err}
	}

	slog.Debug("extracted file",
		"file", f.Name,
		"extractor", extractor.Name(),
		"chars", len(text),
	)
	return Result{Name: f.Name, Text: text}
}

// runExtract 在独立goroutine中执行提取，解码器panic转为普通错误，
// 超过时限或context取消时放弃该文件并立即返回，不再等待goroutine退出
func runExtract(ctx context.Context, e Extractor, data []byte) (string, error) {
	type extracted struct {
		text string
		err  error
	}

	done := make(chan extracted, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- extracted{err: fmt.Errorf("%w: extractor panic: %v", ErrMalformedDocument, r)}
			}
		}()
		text, err := e.Extract(ctx, data)
		done <- extracted{text: text, err: err}
	}()

	timer := time.NewTimer(extractTimeout)
	defer timer.Stop()

	select {
	case res := <-done:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		return "", ErrExtractionStalled
	}
}
