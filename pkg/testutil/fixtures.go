package testutil

import (
	"testing"
)

// HelloRepoURL is the source the hello fixture's web service builds from.
const HelloRepoURL = "https://github.com/docker/dockercloud-hello-world.git"

// HelloProject has one pod, frontend, whose web service builds from a
// remote git repo, three overrides and one up hook.
func HelloProject(t *testing.T, envType EnvType) *TestProject {
	t.Helper()

	p := NewTestProject(t, "hello", envType)
	p.AddPod("frontend", `services:
  web:
    image: dockercloud/hello-world
    build:
      context: `+HelloRepoURL+`
    ports:
      - "80:80"
`)
	p.AddOverride("development", "frontend", `services:
  web:
    environment:
      RACK_ENV: development
`)
	p.AddOverride("production", "", "")
	p.AddOverride("test", "", "")
	p.AddHook("up", "hello.hook", "#!/bin/sh\necho Hello\n")
	return p
}

// RailsHelloRepoURL and CoffeeRailsURL are the rails fixture's sources.
const (
	RailsHelloRepoURL = "https://github.com/faradayio/rails_hello.git"
	CoffeeRailsURL    = "https://github.com/rails/coffee-rails.git"
)

// RailsHelloProject has a service pod with a source and a library, a
// database pod, and a migrate task pod.
func RailsHelloProject(t *testing.T, envType EnvType) *TestProject {
	t.Helper()

	p := NewTestProject(t, "rails_hello", envType)
	p.AddPod("frontend", `services:
  web:
    image: faraday/rails_hello
    build:
      context: `+RailsHelloRepoURL+`
    labels:
      io.conductor.srcdir: /usr/src/app
      io.conductor.lib.coffee_rails: `+CoffeeRailsURL+`
    env_file:
      - ../config/web.env
    environment:
      DATABASE_URL: postgres://postgres@db:5432/rails_hello_development
`)
	p.AddPod("db", `services:
  db:
    image: postgres
`)
	p.AddPod("migrate", `services:
  rake:
    image: faraday/rails_hello
    command: ["rake", "db:migrate"]
`)
	p.AddPodConfig("migrate", "pod_type: task\n")
	p.AddFile("config/web.env", "# web settings\nRAILS_ENV=development\nDATABASE_URL=ignored\n")

	p.AddOverride("development", "frontend", `services:
  web:
    environment:
      RAILS_LOG_TO_STDOUT: "1"
`)
	p.AddOverride("production", "db", `services:
  db:
    image: postgres:16
`)
	p.AddOverride("test", "", "")
	return p
}
