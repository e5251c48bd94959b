// Package main builds, tests and ships the headline binaries with Dagger.
package main

import (
	"context"
	"dagger/headline/internal/dagger"
	"fmt"
	"strings"
)

const (
	goImage      = "golang:1.24.2-alpine"
	runtimeImage = "gcr.io/distroless/static-debian12:latest"
)

// binaries are the commands under ./cmd shipped in the image.
var binaries = []string{"headline", "db"}

type Headline struct{}

// goEnv returns a Go toolchain container with the source mounted and module caches shared.
func goEnv(src *dagger.Directory) *dagger.Container {
	return dag.Container().
		From(goImage).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("headline-go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("headline-go-build")).
		WithDirectory("/src", src).
		WithWorkdir("/src").
		WithEnvVariable("CGO_ENABLED", "0").
		WithExec([]string{"apk", "add", "--no-cache", "ca-certificates"})
}

// Test runs the unit tests. Redis-backed tests use miniredis so no services are needed.
func (m *Headline) Test(
	ctx context.Context,
	// +required
	src *dagger.Directory,
) (string, error) {
	return goEnv(src).
		WithExec([]string{"go", "test", "./..."}).
		Stdout(ctx)
}

// BuildContainer compiles every binary for the platform and packages them on distroless.
// The image defaults to printing the resolved configuration.
func (m *Headline) BuildContainer(
	ctx context.Context,
	// +required
	src *dagger.Directory,
	// +optional
	// +default="linux/amd64"
	platform *dagger.Platform,
) (*dagger.Container, error) {
	target := dagger.Platform("linux/amd64")
	if platform != nil {
		target = *platform
	}

	arch, err := dag.Containerd().ArchitectureOf(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve architecture of %s: %w", target, err)
	}

	build := goEnv(src).
		WithEnvVariable("GOOS", "linux").
		WithEnvVariable("GOARCH", arch).
		WithExec([]string{"apk", "add", "--no-cache", "upx"}).
		WithExec([]string{"mkdir", "-p", "/out/bin", "/out/logs", "/out/exports"})

	for _, name := range binaries {
		build = build.
			WithExec([]string{"go", "build", "-trimpath", "-ldflags=-s -w", "-o", "/out/bin/" + name, "./cmd/" + name}).
			WithExec([]string{"upx", "--best", "--lzma", "/out/bin/" + name})
	}

	return dag.Container(dagger.ContainerOpts{Platform: target}).
		From(runtimeImage).
		WithFile("/etc/ssl/certs/ca-certificates.crt", build.File("/etc/ssl/certs/ca-certificates.crt")).
		WithDirectory("/app", build.Directory("/out")).
		WithWorkdir("/app").
		WithEntrypoint([]string{"/app/bin/headline"}).
		WithDefaultArgs([]string{"config"}), nil
}

// Publish pushes one image covering all requested platforms and returns its reference.
func (m *Headline) Publish(
	ctx context.Context,
	// +required
	src *dagger.Directory,
	// Image reference including tag
	// +required
	image string,
	// Comma-separated platforms
	// +optional
	// +default="linux/amd64"
	platforms string,
) (string, error) {
	variants := make([]*dagger.Container, 0, 2)
	for _, platform := range parsePlatforms(platforms) {
		ctr, err := m.BuildContainer(ctx, src, &platform)
		if err != nil {
			return "", err
		}
		variants = append(variants, ctr)
	}

	ref, err := dag.Container().Publish(ctx, image, dagger.ContainerPublishOpts{PlatformVariants: variants})
	if err != nil {
		return "", fmt.Errorf("failed to push %s: %w", image, err)
	}
	return ref, nil
}

// Run builds one command and runs it against a mounted config directory,
// e.g. cmd "headline" with args "replay --scenario /etc/headline/config/scenario.json".
func (m *Headline) Run(
	ctx context.Context,
	// +required
	src *dagger.Directory,
	// Directory holding headline.toml
	// +required
	configDir *dagger.Directory,
	// "headline" or "db"
	// +required
	cmd string,
	// +optional
	args string,
) *dagger.Container {
	return goEnv(src).
		WithDirectory("/etc/headline/config", configDir).
		WithExec([]string{"go", "build", "-o", "/out/" + cmd, "./cmd/" + cmd}).
		WithExec(append([]string{"/out/" + cmd}, strings.Fields(args)...))
}

func parsePlatforms(raw string) []dagger.Platform {
	var result []dagger.Platform
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, dagger.Platform(p))
		}
	}
	if len(result) == 0 {
		result = []dagger.Platform{"linux/amd64"}
	}
	return result
}
