package llm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"LeraAssistant/internal/logging"
)

// 프로세스 시작 시 GGUF 모델을 올리는 llama-server 자식 프로세스
type LocalServer struct {
	cmd     *exec.Cmd
	baseURL string
}

type LocalServerOptions struct {
	Bin       string
	ModelPath string
	CtxLen    int
	Threads   int
	Ready     time.Duration
}

func StartLocalServer(ctx context.Context, opts LocalServerOptions) (*LocalServer, error) {
	logger := logging.FromCtx(ctx)

	if _, err := os.Stat(opts.ModelPath); err != nil {
		return nil, fmt.Errorf("StartLocalServer(): model file not found: %w", err)
	}
	if _, err := exec.LookPath(opts.Bin); err != nil {
		return nil, fmt.Errorf("StartLocalServer(): llama-server binary not found: %w", err)
	}

	// 빈 포트 확보
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	args := []string{"--model", opts.ModelPath, "--host", "127.0.0.1", "--port", strconv.Itoa(port)}
	if opts.CtxLen > 0 {
		args = append(args, "--ctx-size", strconv.Itoa(opts.CtxLen))
	}
	if opts.Threads > 0 {
		args = append(args, "--threads", strconv.Itoa(opts.Threads))
	}

	cmd := exec.CommandContext(ctx, opts.Bin, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("StartLocalServer(): stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("StartLocalServer(): stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("StartLocalServer(): failed to start llama-server: %w", err)
	}
	// 파이프마다 따로 비워야 자식 프로세스가 쓰기에서 막히지 않음
	go drainLog(logger, "stdout", stdout)
	go drainLog(logger, "stderr", stderr)

	s := &LocalServer{cmd: cmd, baseURL: "http://127.0.0.1:" + strconv.Itoa(port)}

	ready := opts.Ready
	if ready <= 0 {
		ready = 60 * time.Second
	}
	probe := NewClient(s.baseURL, 2*time.Second)
	deadline := time.Now().Add(ready)
	for time.Now().Before(deadline) {
		if err := probe.Health(ctx); err == nil {
			logger.Info().Str("url", s.baseURL).Str("model", opts.ModelPath).Msg("StartLocalServer(): llama-server ready")
			return s, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	s.Close()
	return nil, fmt.Errorf("StartLocalServer(): llama-server failed to become ready at %s", s.baseURL)
}

// 줄 단위로 디버그 로그에 기록, 스캐너가 멈추면 나머지는 버림
func drainLog(logger *zerolog.Logger, stream string, r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		logger.Debug().Str("src", "llama-server").Str("stream", stream).Msg(scanner.Text())
	}
	_, _ = io.Copy(io.Discard, r)
}

func (s *LocalServer) BaseURL() string { return s.baseURL }

func (s *LocalServer) Close() error {
	if s.cmd == nil || s.cmd.Process == nil {
		return nil
	}
	if err := s.cmd.Process.Kill(); err != nil {
		return err
	}
	_ = s.cmd.Wait()
	return nil
}
