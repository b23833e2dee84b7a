package seed

import "scrollforcause/platform/internal/models"

// demoOrgs returns the demo dataset. Most organizations are verified and
// active so their posts surface in the feed; the last two are deliberately
// unverified and deactivated so local environments exercise the eligibility
// gate.
func demoOrgs() []orgSpec {
	return []orgSpec{
		{
			userID:      "org_ocean_guardians",
			name:        "Ocean Guardians",
			ein:         "12-3456781",
			description: "Ocean Guardians mobilizes coastal communities to protect marine ecosystems through beach cleanups, coral reef restoration, and ocean education programs.",
			contact:     "Maria Santos",
			email:       "maria@oceanguardians.org",
			website:     "https://oceanguardians.org",
			city:        "San Diego",
			state:       "CA",
			status:      models.VerificationVerified,
			active:      true,
			categories:  []string{"environment"},
			opps: []oppSpec{
				{
					title:       "Saturday Beach Cleanup",
					description: "Join us every Saturday morning to clean up Mission Beach. We provide all supplies. All ages welcome!",
					schedule:    models.ScheduleRecurring,
					recurrence:  "Every Saturday, 8:00 AM - 11:00 AM",
					commitment:  "3 hours/week",
					location:    "Mission Beach, San Diego, CA",
					needed:      30,
				},
				{
					title:       "Marine Education Workshop Leader",
					description: "Lead interactive ocean science workshops for elementary school students. Training provided.",
					schedule:    models.ScheduleFlexible,
					commitment:  "4-6 hours/month",
					location:    "Birch Aquarium, La Jolla, CA",
					needed:      10,
				},
			},
			posts: []postSpec{
				{title: "200 volunteers removed 2,000 lbs of trash from Mission Beach!", description: "Our biggest cleanup yet. Every piece of trash picked up is one less threat to marine life.", ageDays: 10, oppIndex: 0},
				{title: "Kids learning about tide pools at our marine workshop", description: "These future marine biologists spent the morning exploring tide pools. The excitement on their faces says it all!", ageDays: 7, oppIndex: 1},
				{title: "Sea turtle release day, meet Coral!", description: "After 3 months of rehabilitation, Coral the sea turtle is heading home. This is why we do what we do.", ageDays: 3, oppIndex: -1},
			},
		},
		{
			userID:      "org_code_for_tomorrow",
			name:        "Code for Tomorrow",
			ein:         "12-3456782",
			description: "Code for Tomorrow bridges the digital divide by providing free coding bootcamps and mentorship to underserved youth.",
			contact:     "James Chen",
			email:       "james@codefortomorrow.org",
			website:     "https://codefortomorrow.org",
			city:        "Austin",
			state:       "TX",
			status:      models.VerificationVerified,
			active:      true,
			categories:  []string{"education", "youth"},
			opps: []oppSpec{
				{
					title:       "Python Bootcamp Mentor",
					description: "Mentor a cohort of 10 teens through our 8-week Python fundamentals course. No teaching degree needed.",
					schedule:    models.ScheduleRecurring,
					recurrence:  "Tuesdays & Thursdays, 4:00 PM - 6:00 PM",
					commitment:  "4 hours/week",
					remote:      true,
					needed:      8,
				},
				{
					title:       "Laptop Refurbishment Day",
					description: "Help us wipe, reinstall, and configure donated laptops for students in our program.",
					schedule:    models.ScheduleOneTime,
					commitment:  "6 hours",
					location:    "Austin Community Center, Austin, TX",
					needed:      15,
					startInDays: 14,
				},
			},
			posts: []postSpec{
				{title: "Teen coders ship their first Python app!", description: "After 8 weeks of hard work, our bootcamp students presented their final projects. These kids are the real deal.", ageDays: 12, oppIndex: 0},
				{title: "50 laptops refurbished and ready for students", description: "Each one will go to a student who didn't have a computer at home. Tech equity matters.", ageDays: 8, oppIndex: 1},
				{title: "Meet Jaylen, from student to mentor", description: "Jaylen joined our bootcamp two years ago with zero coding experience. Now he's mentoring the next generation.", ageDays: 2, oppIndex: -1},
			},
		},
		{
			userID:      "org_paws_claws",
			name:        "Paws & Claws Rescue",
			ein:         "12-3456784",
			description: "Paws & Claws Rescue saves animals from high-kill shelters and provides foster care, veterinary services, and adoption support.",
			contact:     "Emily Park",
			email:       "emily@pawsandclaws.org",
			website:     "https://pawsandclaws.org",
			city:        "Portland",
			state:       "OR",
			status:      models.VerificationVerified,
			active:      true,
			categories:  []string{"animals"},
			opps: []oppSpec{
				{
					title:       "Foster Home Provider",
					description: "Open your home to a rescue animal while we find their forever family. We cover all vet bills and food costs.",
					schedule:    models.ScheduleFlexible,
					commitment:  "Ongoing (2-4 week commitments)",
					location:    "Portland Metro Area, OR",
					needed:      50,
				},
			},
			posts: []postSpec{
				{title: "Biscuit found his forever home!", description: "After 6 months in foster care, Biscuit the golden retriever just got adopted. Happy tears all around.", ageDays: 11, oppIndex: 0},
				{title: "Meet our newest rescues, 8 kittens need foster homes", description: "These tiny kittens were found under a porch during a rainstorm. They need warm foster homes ASAP.", ageDays: 1, oppIndex: 0},
			},
		},
		{
			userID:      "org_silver_companions",
			name:        "Silver Companions",
			ein:         "12-3456785",
			description: "Silver Companions combats senior isolation by pairing volunteers with elderly residents for regular visits and companionship.",
			contact:     "Robert Williams",
			email:       "robert@silvercompanions.org",
			website:     "https://silvercompanions.org",
			city:        "Phoenix",
			state:       "AZ",
			status:      models.VerificationVerified,
			active:      true,
			categories:  []string{"seniors"},
			opps: []oppSpec{
				{
					title:       "Weekly Companion Visitor",
					description: "Visit a senior resident once a week for conversation, games, or a short walk. Background check required.",
					schedule:    models.ScheduleRecurring,
					recurrence:  "Weekly, flexible day/time",
					commitment:  "2 hours/week",
					location:    "Various facilities, Phoenix, AZ",
					needed:      40,
				},
			},
			posts: []postSpec{
				{title: "Harold and his companion Jake, 1 year of friendship", description: "Harold, 89, and Jake, 24, have been meeting every Tuesday for a year. Their bond is unbreakable.", ageDays: 13, oppIndex: 0},
				{title: "Senior dance party at Sunrise Living", description: "Who says you can't dance at 90? Our weekly music sessions bring so much energy and laughter.", ageDays: 2, oppIndex: -1},
			},
		},
		{
			userID:      "org_no_hunger",
			name:        "No Hunger Project",
			ein:         "12-3456789",
			description: "No Hunger Project fights food insecurity through community gardens, mobile food pantries, and nutrition education.",
			contact:     "Marcus Brown",
			email:       "marcus@nohunger.org",
			website:     "https://nohunger.org",
			city:        "Philadelphia",
			state:       "PA",
			status:      models.VerificationVerified,
			active:      true,
			categories:  []string{"food-security"},
			opps: []oppSpec{
				{
					title:       "Food Rescue Driver",
					description: "Pick up surplus food from restaurants and grocery stores and deliver it to our distribution centers.",
					schedule:    models.ScheduleRecurring,
					recurrence:  "Daily routes available, flexible scheduling",
					commitment:  "2-3 hours/shift",
					location:    "Various pickup points, Philadelphia, PA",
					needed:      20,
				},
			},
			posts: []postSpec{
				{title: "10,000 lbs of food rescued this week alone", description: "Our drivers saved ten thousand pounds of perfectly good food from landfills. It's feeding families across Philly.", ageDays: 12, oppIndex: 0},
				{title: "Community garden harvest, tomatoes for everyone!", description: "Our Kensington garden produced 500 lbs of tomatoes this month. Volunteers grew it, neighbors eat it.", ageDays: 6, oppIndex: -1},
			},
		},
		{
			// Pending verification: its posts must never reach the feed.
			userID:      "org_river_revival",
			name:        "River Revival Coalition",
			ein:         "12-3456790",
			description: "River Revival Coalition restores urban waterways through cleanup events and native planting days.",
			contact:     "Dana Whitfield",
			email:       "dana@riverrevival.org",
			city:        "Cleveland",
			state:       "OH",
			status:      models.VerificationPending,
			active:      true,
			categories:  []string{"environment"},
			posts: []postSpec{
				{title: "Our first riverbank cleanup is coming up", description: "We're new here, join our inaugural cleanup along the Cuyahoga.", ageDays: 4, oppIndex: -1},
			},
		},
		{
			// Verified but deactivated: same story.
			userID:      "org_bright_futures",
			name:        "Bright Futures Fund",
			ein:         "12-3456791",
			description: "Bright Futures Fund provided college scholarships to first-generation students.",
			contact:     "Priya Nair",
			email:       "priya@brightfutures.org",
			city:        "Boston",
			state:       "MA",
			status:      models.VerificationVerified,
			active:      false,
			categories:  []string{"education"},
			posts: []postSpec{
				{title: "Scholarship season wrap-up", description: "Thanks to everyone who supported this year's cohort.", ageDays: 9, oppIndex: -1},
			},
		},
	}
}
