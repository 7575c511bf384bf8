package main

import (
	"bikeshare/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// bikeshare is an interactive explorer for US bikeshare trip data:
//   - Asks for a city and optional month and day filters, re-prompting until each answer is valid
//   - Loads the city's CSV (plain or compressed) and keeps recent tables cached for restarts
//   - Prints the most common travel times, popular stations, trip durations and user demographics
//   - Pages through the matching raw rows on request, then offers to start over
//
// Datasets are located through an optional YAML config; without one the three
// default city CSVs are expected in the working directory. A small JSON state
// file remembers the last selection and which datasets `bikeshare fetch` downloaded.
func main() {
	cmd.Execute()
}
