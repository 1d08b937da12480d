package managers

var defaultDefinitions = []Definition{
	{
		Identifier:       IdentifierMaven,
		MarkerFiles:      []string{"pom.xml"},
		Executable:       "mvn",
		InstallReference: "https://maven.apache.org/",
		Commands: CommandTable{
			VerbInit:     "mvn archetype:generate",
			VerbInstall:  "mvn install",
			VerbCompile:  "mvn compile",
			VerbBuild:    "mvn package",
			VerbStart:    "mvn exec:java",
			VerbTest:     "mvn test",
			VerbDeps:     "mvn dependency:tree",
			VerbDoc:      "mvn javadoc:javadoc",
			VerbClean:    "mvn clean",
			VerbOutdated: "mvn versions:display-dependency-updates",
			VerbUpdate:   "mvn versions:use-latest-versions",
		},
	},
	{
		Identifier:       IdentifierGradle,
		MarkerFiles:      []string{"build.gradle", "build.gradle.kts"},
		Executable:       "gradle",
		InstallReference: "https://gradle.org/",
		Commands: CommandTable{
			VerbInit:     "gradle init",
			VerbInstall:  "gradle publishToMavenLocal",
			VerbCompile:  "gradle classes",
			VerbBuild:    "gradle build",
			VerbStart:    "gradle run",
			VerbTest:     "gradle test",
			VerbDeps:     "gradle dependencies",
			VerbDoc:      "gradle javadoc",
			VerbClean:    "gradle clean",
			VerbOutdated: "gradle dependencyUpdates",
			VerbUpdate:   "gradle useLatestVersions",
		},
	},
	{
		Identifier:       IdentifierSBT,
		MarkerFiles:      []string{"build.sbt"},
		Executable:       "sbt",
		InstallReference: "https://www.scala-sbt.org/",
		Commands: CommandTable{
			VerbInit:     "sbt new scala/scala-seed.g8",
			VerbInstall:  "sbt update",
			VerbCompile:  "sbt compile",
			VerbBuild:    "sbt package",
			VerbStart:    "sbt run",
			VerbTest:     "sbt test",
			VerbDeps:     "sbt dependencyTree",
			VerbDoc:      "sbt doc",
			VerbClean:    "sbt clean",
			VerbOutdated: "sbt dependencyUpdates",
			VerbUpdate:   "sbt update",
		},
	},
	{
		Identifier:       IdentifierNPM,
		MarkerFiles:      []string{"package.json"},
		Executable:       "npm",
		InstallReference: "https://nodejs.org/",
		Commands: CommandTable{
			VerbInit:     "npm init",
			VerbInstall:  "npm install",
			VerbCompile:  "npm run compile",
			VerbBuild:    "npm run build",
			VerbStart:    "npm start",
			VerbTest:     "npm test",
			VerbDeps:     "npm list",
			VerbDoc:      "npm run doc",
			VerbClean:    "npm run clean",
			VerbOutdated: "npm outdated",
			VerbUpdate:   "npm update",
		},
	},
	{
		Identifier:       IdentifierCargo,
		MarkerFiles:      []string{"Cargo.toml"},
		Executable:       "cargo",
		InstallReference: "https://www.rust-lang.org/tools/install",
		Commands: CommandTable{
			VerbInit:     "cargo init",
			VerbInstall:  "cargo fetch",
			VerbCompile:  "cargo check",
			VerbBuild:    "cargo build",
			VerbStart:    "cargo run",
			VerbTest:     "cargo test",
			VerbDeps:     "cargo tree",
			VerbDoc:      "cargo doc",
			VerbClean:    "cargo clean",
			VerbOutdated: "cargo outdated",
			VerbUpdate:   "cargo update",
		},
	},
	{
		Identifier:       IdentifierCMake,
		MarkerFiles:      []string{"CMakeLists.txt"},
		Executable:       "cmake",
		InstallReference: "https://cmake.org/",
		Commands: CommandTable{
			VerbInstall: "cmake --install build",
			VerbCompile: "cmake -S . -B build",
			VerbBuild:   "cmake --build build",
			VerbTest:    "cmake --build build --target test",
			VerbClean:   "cmake --build build --target clean",
		},
	},
	{
		Identifier:       IdentifierComposer,
		MarkerFiles:      []string{"composer.json"},
		Executable:       "composer",
		InstallReference: "https://getcomposer.org/",
		Commands: CommandTable{
			VerbInit:     "composer init",
			VerbInstall:  "composer install",
			VerbCompile:  "composer check-platform-reqs",
			VerbBuild:    "composer run-script build",
			VerbTest:     "composer run-script test",
			VerbDeps:     "composer depends",
			VerbDoc:      "composer doc",
			VerbClean:    "composer clear-cache",
			VerbOutdated: "composer outdated",
			VerbUpdate:   "composer update",
		},
	},
	{
		Identifier:       IdentifierGo,
		MarkerFiles:      []string{goModuleFileName},
		Executable:       "go",
		InstallReference: "https://go.dev/",
		Commands: CommandTable{
			VerbInit:     "go mod init",
			VerbInstall:  "go mod download",
			VerbCompile:  "go build ./...",
			VerbBuild:    "go build",
			VerbStart:    "go run .",
			VerbTest:     "go test ./...",
			VerbDeps:     "go list -m all",
			VerbDoc:      "go doc",
			VerbClean:    "go clean",
			VerbOutdated: "go list -u -m all",
			VerbUpdate:   "go get -u ./...",
		},
	},
	{
		Identifier:       IdentifierSwift,
		MarkerFiles:      []string{"Package.swift"},
		Executable:       "swift",
		InstallReference: "https://www.swift.org/install/",
		Commands: CommandTable{
			VerbInit:    "swift package init",
			VerbInstall: "swift package resolve",
			VerbCompile: "swift build",
			VerbBuild:   "swift build -c release",
			VerbStart:   "swift run",
			VerbTest:    "swift test",
			VerbDeps:    "swift package show-dependencies",
			VerbClean:   "swift package clean",
			VerbUpdate:  "swift package update",
		},
	},
	{
		Identifier:       IdentifierBundle,
		MarkerFiles:      []string{"Gemfile"},
		Executable:       "bundle",
		InstallReference: "https://bundler.io/",
		Commands: CommandTable{
			VerbInit:     "bundle init",
			VerbInstall:  "bundle install",
			VerbBuild:    "bundle exec rake build",
			VerbTest:     "bundle exec rake test",
			VerbDeps:     "bundle list",
			VerbDoc:      "bundle exec yard doc",
			VerbClean:    "bundle clean",
			VerbOutdated: "bundle outdated",
			VerbUpdate:   "bundle update",
		},
	},
}

// DefaultDefinitions returns copies of the built-in manager definitions in registry order.
func DefaultDefinitions() []Definition {
	definitions := make([]Definition, 0, len(defaultDefinitions))
	for _, definition := range defaultDefinitions {
		definitions = append(definitions, definition.Clone())
	}
	return definitions
}
