package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/careslot/careslot/internal/config"
	"github.com/careslot/careslot/internal/domain/doctor"
	"github.com/careslot/careslot/internal/platform/apperror"
)

func strp(s string) *string { return &s }

// standardDay is the most common slot grid in the sample data.
var standardDay = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}

func week(monday, friday, saturday []string) doctor.Availability {
	return doctor.Availability{
		"monday":    monday,
		"tuesday":   standardDay,
		"wednesday": standardDay,
		"thursday":  standardDay,
		"friday":    friday,
		"saturday":  saturday,
		"sunday":    {},
	}
}

func seedDoctors() []*doctor.CreateRequest {
	return []*doctor.CreateRequest{
		{
			Name:        "Dr. Sarah Johnson",
			Specialty:   "Cardiology",
			Experience:  15,
			Rating:      4.8,
			Image:       strp("https://images.unsplash.com/photo-1559839734-2b71ea197ec2?w=150&h=150&fit=crop&crop=face"),
			Description: strp("Experienced cardiologist specializing in heart disease prevention and treatment. Dr. Johnson has extensive experience in diagnosing and treating various cardiovascular conditions."),
			Email:       "sarah.johnson@healthcare.com",
			Phone:       "+1-555-0101",
			Availability: week(standardDay, standardDay,
				[]string{"09:00", "10:00", "11:00"}),
			Location: &doctor.Location{
				Address: "123 Medical Center Dr",
				City:    "New York",
				State:   "NY",
				ZipCode: "10001",
			},
			Education: []doctor.Education{
				{Degree: "MD", Institution: "Harvard Medical School", Year: 2008},
			},
			Certifications: []string{"Board Certified in Cardiology", "American Heart Association"},
			Languages:      []string{"English", "Spanish"},
		},
		{
			Name:        "Dr. Michael Chen",
			Specialty:   "Neurology",
			Experience:  12,
			Rating:      4.9,
			Image:       strp("https://images.unsplash.com/photo-1612349317150-e413f6a5b16d?w=150&h=150&fit=crop&crop=face"),
			Description: strp("Neurologist with expertise in treating neurological disorders and brain conditions. Dr. Chen specializes in stroke treatment and prevention."),
			Email:       "michael.chen@healthcare.com",
			Phone:       "+1-555-0102",
			Availability: week(
				[]string{"10:00", "11:00", "14:00", "15:00", "16:00"},
				[]string{"09:00", "10:00", "11:00", "14:00", "15:00"},
				[]string{"09:00", "10:00"}),
			Location: &doctor.Location{
				Address: "456 Neurology Ave",
				City:    "Los Angeles",
				State:   "CA",
				ZipCode: "90210",
			},
			Education: []doctor.Education{
				{Degree: "MD", Institution: "Stanford University School of Medicine", Year: 2011},
			},
			Certifications: []string{"Board Certified in Neurology", "American Academy of Neurology"},
			Languages:      []string{"English", "Mandarin"},
		},
		{
			Name:        "Dr. Emily Rodriguez",
			Specialty:   "Pediatrics",
			Experience:  8,
			Rating:      4.7,
			Image:       strp("https://images.unsplash.com/photo-1594824475548-9a5a9c4c5c5c?w=150&h=150&fit=crop&crop=face"),
			Description: strp("Pediatrician dedicated to providing comprehensive care for children of all ages. Dr. Rodriguez has a gentle approach and specializes in child development."),
			Email:       "emily.rodriguez@healthcare.com",
			Phone:       "+1-555-0103",
			Availability: week(standardDay, standardDay,
				[]string{"09:00", "10:00", "11:00"}),
			Location: &doctor.Location{
				Address: "789 Children's Hospital Blvd",
				City:    "Chicago",
				State:   "IL",
				ZipCode: "60601",
			},
			Education: []doctor.Education{
				{Degree: "MD", Institution: "University of Chicago Pritzker School of Medicine", Year: 2015},
			},
			Certifications: []string{"Board Certified in Pediatrics", "American Academy of Pediatrics"},
			Languages:      []string{"English", "Spanish"},
		},
		{
			Name:        "Dr. David Thompson",
			Specialty:   "Orthopedics",
			Experience:  20,
			Rating:      4.6,
			Image:       strp("https://images.unsplash.com/photo-1622253692010-333f2da6031d?w=150&h=150&fit=crop&crop=face"),
			Description: strp("Orthopedic surgeon specializing in joint replacement and sports medicine. Dr. Thompson has performed over 1000 successful surgeries."),
			Email:       "david.thompson@healthcare.com",
			Phone:       "+1-555-0104",
			Availability: doctor.Availability{
				"monday":    {"08:00", "09:00", "10:00", "14:00", "15:00", "16:00"},
				"tuesday":   {"08:00", "09:00", "10:00", "14:00", "15:00", "16:00"},
				"wednesday": {"08:00", "09:00", "10:00", "14:00", "15:00", "16:00"},
				"thursday":  {"08:00", "09:00", "10:00", "14:00", "15:00", "16:00"},
				"friday":    {"08:00", "09:00", "10:00", "14:00", "15:00", "16:00"},
				"saturday":  {"08:00", "09:00", "10:00"},
				"sunday":    {},
			},
			Location: &doctor.Location{
				Address: "321 Sports Medicine Center",
				City:    "Miami",
				State:   "FL",
				ZipCode: "33101",
			},
			Education: []doctor.Education{
				{Degree: "MD", Institution: "Johns Hopkins University School of Medicine", Year: 2003},
			},
			Certifications: []string{"Board Certified in Orthopedic Surgery", "American Academy of Orthopaedic Surgeons"},
			Languages:      []string{"English"},
		},
		{
			Name:        "Dr. Lisa Park",
			Specialty:   "Dermatology",
			Experience:  10,
			Rating:      4.8,
			Image:       strp("https://images.unsplash.com/photo-1582750433449-648ed127bb54?w=150&h=150&fit=crop&crop=face"),
			Description: strp("Dermatologist specializing in skin conditions, cosmetic procedures, and skin cancer screening. Dr. Park is known for her gentle approach to skin care."),
			Email:       "lisa.park@healthcare.com",
			Phone:       "+1-555-0105",
			Availability: week(standardDay, standardDay,
				[]string{"09:00", "10:00", "11:00"}),
			Location: &doctor.Location{
				Address: "654 Skin Care Plaza",
				City:    "Seattle",
				State:   "WA",
				ZipCode: "98101",
			},
			Education: []doctor.Education{
				{Degree: "MD", Institution: "University of Washington School of Medicine", Year: 2013},
			},
			Certifications: []string{"Board Certified in Dermatology", "American Academy of Dermatology"},
			Languages:      []string{"English", "Korean"},
		},
		{
			Name:        "Dr. James Wilson",
			Specialty:   "Psychiatry",
			Experience:  14,
			Rating:      4.9,
			Image:       strp("https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face"),
			Description: strp("Psychiatrist providing mental health care and therapy for various psychological conditions. Dr. Wilson specializes in anxiety and depression treatment."),
			Email:       "james.wilson@healthcare.com",
			Phone:       "+1-555-0106",
			Availability: week(
				[]string{"10:00", "11:00", "14:00", "15:00", "16:00"},
				standardDay,
				[]string{"09:00", "10:00"}),
			Location: &doctor.Location{
				Address: "987 Mental Health Center",
				City:    "Boston",
				State:   "MA",
				ZipCode: "02101",
			},
			Education: []doctor.Education{
				{Degree: "MD", Institution: "Boston University School of Medicine", Year: 2009},
			},
			Certifications: []string{"Board Certified in Psychiatry", "American Psychiatric Association"},
			Languages:      []string{"English"},
		},
	}
}

func runSeed() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := doctor.NewRepoPG(pool)
	svc := doctor.NewService(repo)

	created, skipped := 0, 0
	for _, req := range seedDoctors() {
		email := strings.ToLower(req.Email)
		if _, err := repo.GetByEmail(ctx, email); err == nil {
			fmt.Printf("skip   %s (%s): already present\n", req.Name, email)
			skipped++
			continue
		} else if !apperror.IsKind(err, apperror.KindNotFound) {
			return fmt.Errorf("check existing doctor %s: %w", email, err)
		}

		if _, err := svc.Create(ctx, req); err != nil {
			return fmt.Errorf("seed doctor %s: %w", email, err)
		}
		fmt.Printf("create %s (%s)\n", req.Name, email)
		created++
	}

	fmt.Printf("Seed complete: %d created, %d skipped.\n", created, skipped)
	return nil
}
