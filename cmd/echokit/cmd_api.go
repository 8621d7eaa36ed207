package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"echokit/pkg/githubapi"
	"echokit/pkg/weatherapi"
)

var (
	githubToken string

	weatherLat float64
	weatherLon float64
)

var githubCmd = &cobra.Command{
	Use:   "github",
	Short: "Query the GitHub API",
}

var githubRepoCmd = &cobra.Command{
	Use:   "repo OWNER/NAME...",
	Short: "Show repository details",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newGitHubClient()

		repos, err := client.GetRepos(cmd.Context(), args)
		if err != nil {
			return err
		}

		for _, repo := range repos {
			fmt.Printf("%s  ★%d  forks:%d  %s\n", repo.FullName, repo.Stars, repo.Forks, repo.Language)
			if repo.Description != "" {
				fmt.Printf("    %s\n", repo.Description)
			}
		}
		return nil
	},
}

var githubReposCmd = &cobra.Command{
	Use:   "repos USER",
	Short: "List a user's public repositories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newGitHubClient()

		repos, err := client.ListRepos(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		for _, repo := range repos {
			fmt.Printf("%s  ★%d\n", repo.FullName, repo.Stars)
		}
		return nil
	},
}

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Show current weather for a coordinate",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := weatherapi.NewClient()

		current, err := client.CurrentWeather(cmd.Context(), weatherLat, weatherLon)
		if err != nil {
			return err
		}

		fmt.Printf("%.1f°C  wind %.1f km/h  code %d  (%s)\n",
			current.Temperature, current.WindSpeed, current.WeatherCode, current.Time)
		return nil
	},
}

func newGitHubClient() *githubapi.Client {
	token := githubToken
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token != "" {
		return githubapi.NewClient(githubapi.WithToken(token))
	}
	return githubapi.NewClient()
}

func init() {
	githubCmd.PersistentFlags().StringVar(&githubToken, "token", "", "GitHub token (defaults to GITHUB_TOKEN)")
	githubCmd.AddCommand(githubRepoCmd, githubReposCmd)

	weatherCmd.Flags().Float64Var(&weatherLat, "lat", 0, "Latitude")
	weatherCmd.Flags().Float64Var(&weatherLon, "lon", 0, "Longitude")
	cobra.CheckErr(weatherCmd.MarkFlagRequired("lat"))
	cobra.CheckErr(weatherCmd.MarkFlagRequired("lon"))

	rootCmd.AddCommand(githubCmd, weatherCmd)
}
