package main

import (
	"fmt"

	"github.com/accesstwin/accesstwin-go/internal/privacy"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a demo student profile",
	Long:  "Populates the record store with one realistic demo profile so every command has data to work with.",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func rating(v float64) *float64 { return &v }

func runSeed(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	profile := privacy.Profile{
		Name: "Maya Chen",
		Strengths: []privacy.Item{
			{Text: "Exceptional auditory memory — can recall lengthy verbal instructions with high accuracy", Priority: "high"},
			{Text: "Strong creative writing skills; won the school short-story contest two years in a row", Priority: "high"},
			{Text: "Highly motivated self-advocate who confidently communicates her needs to new teachers", Priority: "non-negotiable"},
			{Text: "Skilled at using assistive technology — independently learned JAWS and ZoomText", Priority: "non-negotiable"},
		},
		History: []privacy.Item{
			{Text: "Diagnosed with Stargardt disease (juvenile macular degeneration) at age 8", Priority: "non-negotiable"},
			{Text: "Received itinerant vision services from grades 3-6 at Lincoln Elementary", Priority: "medium"},
			{Text: "Transitioned to current high school with a full IEP in place since 9th grade", Priority: "high"},
		},
		Hopes: []privacy.Item{
			{Text: "Attend a four-year university with a strong disability services office", Priority: "non-negotiable"},
			{Text: "Major in journalism or creative writing", Priority: "high"},
			{Text: "Develop skills for independent travel using public transportation", Priority: "medium"},
		},
		Stakeholders: []privacy.Item{
			{Text: "Dr. Linda Chen — Mother, primary advocate and IEP meeting participant", Priority: "non-negotiable"},
			{Text: "Ms. Rebecca Torres — 10th Grade English Teacher, accommodations coordinator", Priority: "high"},
		},
	}

	id, err := s.CreateProfile(profile)
	if err != nil {
		return err
	}

	supports := []privacy.SupportEntry{
		{
			Category: "sensory", Subcategory: "visual",
			Description:   "ZoomText screen magnification software (version 2024) installed on student's assigned Chromebook. Magnification set to 3x with inverted colors.",
			UDLMapping:    `{"Representation": true, "Perception": true}`,
			POURMapping:   `{"Perceivable": true}`,
			Status:        "active",
			Effectiveness: rating(4.5),
		},
		{
			Category: "sensory", Subcategory: "visual",
			Description:   "Enlarged print materials, 18 pt minimum in a sans-serif font, for all handouts and assessments.",
			UDLMapping:    `{"Representation": true, "Perception": true}`,
			POURMapping:   `{"Perceivable": true, "Understandable": true}`,
			Status:        "active",
			Effectiveness: rating(4.8),
		},
		{
			Category: "academic", Subcategory: "assessment",
			Description: "Extended time (1.5x) on timed assessments, taken in a reduced-distraction setting.",
			UDLMapping:  `{"Action & Expression": true, "Engagement": true}`,
			POURMapping: `{"Operable": true, "Understandable": true}`,
			Status:      "active",
		},
	}
	for _, e := range supports {
		if _, err := s.AddSupport(id, e); err != nil {
			return err
		}
	}

	logs := []privacy.TrackingLog{
		{LoggedByRole: "teacher", ImplementationNotes: "Set up ZoomText on the classroom desktop before first period.", OutcomeNotes: "Maya navigated the reading assignment independently."},
		{LoggedByRole: "student", ImplementationNotes: "Used enlarged print packet for the chemistry quiz.", OutcomeNotes: "Finished with time to spare; much less eye strain."},
	}
	for _, l := range logs {
		if _, err := s.AddTrackingLog(id, 0, l); err != nil {
			return err
		}
	}

	fmt.Printf("Seeded demo profile %d (Maya Chen): %d supports, %d logs\n", id, len(supports), len(logs))
	return nil
}
