package mock

import "github.com/predict-win/internal/domain"

// CurrentUserID identifies the viewing user in every mock list
const CurrentUserID = "current"

const placeholder = "/placeholder.svg"

// DefaultRaceID is the race shown when none is requested
const DefaultRaceID = domain.DefaultRaceID

var user = domain.UserProfile{
	ID:            CurrentUserID,
	Name:          "Rahul Sharma",
	Email:         "rahul.s@example.com",
	Phone:         "+91 98765 43210",
	Points:        1850,
	Rank:          24,
	Accuracy:      68,
	Matches:       32,
	NextMilestone: 2000,
	Joined:        "Joined May 2025",
}

var matches = []domain.MatchSummary{
	{
		ID: "match1", Sport: domain.SportCricket, Title: "India vs Australia",
		Status: domain.StatusLive, Time: "10:30 AM", Progress: "Over 10.2",
		Teams: &domain.TeamInfo{AName: "IND", BName: "AUS", AScore: "120/3", BScore: "—"},
	},
	{
		ID: "match2", Sport: domain.SportRacing, Title: "Delhi Derby - Race 3",
		Status: domain.StatusLive, Time: "11:15 AM",
		Race: &domain.RaceInfo{Number: 3, Venue: "Delhi"},
	},
	{
		ID: "match3", Sport: domain.SportCricket, Title: "England vs New Zealand",
		Status: domain.StatusUpcoming, Time: "02:00 PM", Countdown: "2h",
		Teams: &domain.TeamInfo{AName: "ENG", BName: "NZ"},
	},
	{
		ID: "match4", Sport: domain.SportRacing, Title: "Mumbai Cup - Race 1",
		Status: domain.StatusUpcoming, Time: "03:30 PM", Countdown: "3h 30m",
		Race: &domain.RaceInfo{Number: 1, Venue: "Mumbai"},
	},
}

const venue = "Mumbai Race Course"

var races = []domain.Race{
	{ID: "race1", Number: 1, Name: "Royal Derby", Venue: venue, Time: "10:30 AM", Status: domain.StatusCompleted},
	{ID: "race2", Number: 2, Name: "Champion Stakes", Venue: venue, Time: "11:45 AM", Status: domain.StatusLocked},
	{ID: "race3", Number: 3, Name: "Sprinter Cup", Venue: venue, Time: "1:00 PM", Status: domain.StatusLive, TimeToStart: "04:23"},
	{ID: "race4", Number: 4, Name: "Grand National", Venue: venue, Time: "2:15 PM", Status: domain.StatusUpcoming, TimeToStart: "20m"},
	{ID: "race5", Number: 5, Name: "Classic Mile", Venue: venue, Time: "3:30 PM", Status: domain.StatusUpcoming, TimeToStart: "1h 35m"},
	{ID: "race6", Number: 6, Name: "Steeplechase Challenge", Venue: venue, Time: "4:45 PM", Status: domain.StatusUpcoming, TimeToStart: "2h 50m"},
}

var horses = []domain.Horse{
	{ID: 1, Number: 1, Name: "Thunder Bolt", Jockey: "R. Kumar", Odds: 3.5, Tag: domain.HorseFavorite},
	{ID: 2, Number: 2, Name: "Silver Streak", Jockey: "A. Sharma", Odds: 4.2},
	{ID: 3, Number: 3, Name: "Midnight Star", Jockey: "V. Singh", Odds: 6.0},
	{ID: 4, Number: 4, Name: "Golden Arrow", Jockey: "S. Patel", Odds: 8.5},
	{ID: 5, Number: 5, Name: "Royal Flush", Jockey: "M. Desai", Odds: 10.0},
	{ID: 6, Number: 6, Name: "Lucky Charm", Jockey: "P. Roy", Odds: 12.5, Tag: domain.HorseUnderdog},
	{ID: 7, Number: 7, Name: "Wind Dancer", Jockey: "K. Gupta", Odds: 15.0},
	{ID: 8, Number: 8, Name: "Mountain Spirit", Jockey: "J. Khan", Odds: 20.0},
}

var ballOptions = []domain.PredictionChoice{
	{Value: "dot", Label: "Dot", Probability: 35},
	{Value: "1", Label: "1", Probability: 25},
	{Value: "2", Label: "2", Probability: 10},
	{Value: "3", Label: "3", Probability: 5},
	{Value: "4", Label: "4", Probability: 12},
	{Value: "6", Label: "6", Probability: 8},
	{Value: "wicket", Label: "Wicket", Probability: 3},
	{Value: "extra", Label: "Extra", Probability: 2},
}

var trivia = domain.TriviaQuestion{
	ID:       "trivia1",
	Question: "Which player has scored the most centuries in international cricket?",
	Options:  []string{"Virat Kohli", "Sachin Tendulkar", "Ricky Ponting", "Kumar Sangakkara"},
	// Sachin Tendulkar
	CorrectAnswer: 1,
	Points:        50,
}

var globalBoard = []domain.LeaderboardEntry{
	{ID: "user1", Rank: 1, Username: "CricketMaster", Points: 4250, Avatar: placeholder},
	{ID: "user2", Rank: 2, Username: "PredictionKing", Points: 3890},
	{ID: "user3", Rank: 3, Username: "SportsPundit", Points: 3780, Avatar: placeholder},
	{ID: "user4", Rank: 4, Username: "MSDhoni_Fan", Points: 3550},
	{ID: "user5", Rank: 5, Username: "CricketWiz", Points: 3420, Avatar: placeholder},
}

var globalSelf = domain.LeaderboardEntry{ID: CurrentUserID, Rank: 24, Username: "You", Points: 1850, IsCurrentUser: true}

var todayBoard = []domain.LeaderboardEntry{
	{ID: "user3", Rank: 1, Username: "SportsPundit", Points: 380, Avatar: placeholder},
	{ID: "user5", Rank: 2, Username: "CricketWiz", Points: 320, Avatar: placeholder},
	{ID: "user2", Rank: 3, Username: "PredictionKing", Points: 290},
	{ID: "user4", Rank: 4, Username: "MSDhoni_Fan", Points: 250},
	{ID: "user1", Rank: 5, Username: "CricketMaster", Points: 240, Avatar: placeholder},
}

var todaySelf = domain.LeaderboardEntry{ID: CurrentUserID, Rank: 12, Username: "You", Points: 150, IsCurrentUser: true}

var notifications = []domain.Notification{
	{ID: "n1", Category: domain.CategoryMatch, Title: "India vs Australia", Message: "Match starts in 30 minutes. Make your predictions now!", Time: "30 minutes ago"},
	{ID: "n2", Category: domain.CategoryReward, Title: "Points Credited", Message: "You've earned 150 points for your correct predictions!", Time: "2 hours ago"},
	{ID: "n3", Category: domain.CategorySystem, Title: "New Badge Earned", Message: "Congratulations! You've earned the 'Prediction Pro' badge.", Time: "1 day ago", IsRead: true},
	{ID: "n4", Category: domain.CategoryMatch, Title: "England vs New Zealand", Message: "Match results are in. Check your predictions!", Time: "2 days ago", IsRead: true},
	{ID: "n5", Category: domain.CategoryReward, Title: "Reward Available", Message: "You can now claim ₹50 Amazon Voucher with your points!", Time: "3 days ago", IsRead: true},
}

var rewards = domain.RewardCatalog{
	Milestones: []domain.MilestoneReward{
		{ID: "reward1", Name: "₹50 Amazon Voucher", Description: "Redeem for a ₹50 Amazon gift card", PointsRequired: 1000, Image: placeholder, IsAvailable: true},
		{ID: "reward2", Name: "₹150 Flipkart Voucher", Description: "Redeem for a ₹150 Flipkart gift card", PointsRequired: 2000, Image: placeholder},
		{ID: "reward3", Name: "₹500 PhonePe Cashback", Description: "Get ₹500 cash directly in your PhonePe wallet", PointsRequired: 5000, Image: placeholder},
	},
	Claimables: []domain.ClaimableReward{
		{ID: "claim1", Name: "₹50 Amazon Voucher", Description: "Redeem for a ₹50 Amazon gift card", PointsCost: 1000, ExpiryDate: "Jun 15, 2025", Image: placeholder},
		{ID: "claim2", Name: "Cricket Team Jersey", Description: "Redeem for an official Indian cricket team jersey.", PointsCost: 3000, Image: placeholder},
		{ID: "claim3", Name: "Premium Subscription", Description: "Get 1 month of premium subscription with no ads and exclusive content.", PointsCost: 800, Image: placeholder},
	},
	History: []domain.Redemption{
		{ID: "history1", RewardName: "₹50 Amazon Voucher", PointsCost: 1000, DateRedeemed: "May 5, 2025", Status: domain.RedemptionCompleted},
		{ID: "history2", RewardName: "Premium Subscription", PointsCost: 800, DateRedeemed: "Apr 20, 2025", Status: domain.RedemptionProcessing},
	},
}

var history = []domain.HistoryItem{
	{ID: "h1", Match: "India vs Australia", Date: "May 10, 2025", Points: 120, Correct: 8, Total: 10},
	{ID: "h2", Match: "England vs New Zealand", Date: "May 8, 2025", Points: 90, Correct: 6, Total: 10},
	{ID: "h3", Match: "Royal Challengers vs Chennai Kings", Date: "May 5, 2025", Points: 150, Correct: 10, Total: 12},
}

var badges = []domain.Badge{
	{ID: "b1", Name: "Prediction Pro", Description: "Made 100 correct predictions", Icon: "🏆", Earned: true},
	{ID: "b2", Name: "Cricket Expert", Description: "90% accuracy in 5 consecutive matches", Icon: "🏏", Earned: true},
	{ID: "b3", Name: "Top Predictor", Description: "Ranked in top 10 weekly leaderboard", Icon: "🥇"},
	{ID: "b4", Name: "Perfect Match", Description: "100% accuracy in a full match", Icon: "✨"},
}

var stats = domain.Stats{
	Summary: domain.StatsSummary{
		TotalPredictions:   120,
		CorrectPredictions: 82,
		TotalPoints:        1850,
		Accuracy:           68,
		BestStreak:         9,
		CurrentStreak:      3,
	},
	Weekly: []domain.SeriesPoint{
		{Label: "Mon", Points: 120}, {Label: "Tue", Points: 180}, {Label: "Wed", Points: 140},
		{Label: "Thu", Points: 250}, {Label: "Fri", Points: 190}, {Label: "Sat", Points: 310},
		{Label: "Sun", Points: 270},
	},
	Monthly: []domain.SeriesPoint{
		{Label: "Week 1", Points: 850}, {Label: "Week 2", Points: 1200},
		{Label: "Week 3", Points: 980}, {Label: "Week 4", Points: 1400},
	},
	Sports: []domain.SportBreakdown{
		{Sport: "Cricket", Accuracy: 75, Predictions: 48},
		{Sport: "Horse Racing", Accuracy: 62, Predictions: 35},
		{Sport: "Football", Accuracy: 70, Predictions: 20},
		{Sport: "Basketball", Accuracy: 58, Predictions: 12},
	},
	Predictions: []domain.PredictionRecord{
		{ID: "p1", Match: "India vs Australia", Question: "Who will win the match?", Prediction: "India", Result: "India", IsCorrect: true, Points: 100, Date: "May 10, 2025"},
		{ID: "p2", Match: "India vs Australia", Question: "Total runs in first 10 overs?", Prediction: "60-70", Result: "72", IsCorrect: true, Points: 75, Date: "May 10, 2025"},
		{ID: "p3", Match: "England vs New Zealand", Question: "Who will win the match?", Prediction: "England", Result: "New Zealand", Date: "May 8, 2025"},
		{ID: "p4", Match: "Delhi Derby - Race 3", Question: "Which horse will win?", Prediction: "Thunder Bolt", Result: "Speed Demon", Date: "May 7, 2025"},
		{ID: "p5", Match: "Royal Challengers vs Chennai Kings", Question: "Highest individual score?", Prediction: "80-90", Result: "85", IsCorrect: true, Points: 100, Date: "May 5, 2025"},
	},
}

var slides = []domain.Slide{
	{Title: "What is Predict & Win?", Description: "Predict ball-by-ball outcomes in cricket matches and winners in horse racing. It's your knowledge versus the odds!", Image: placeholder},
	{Title: "How to Win", Description: "Predict outcomes, earn points, climb the leaderboard, and redeem exciting rewards. It's that simple!", Image: placeholder},
	{Title: "Start Playing", Description: "It's free to play and based entirely on your knowledge. No entry fees, just rewards for your predictions!", Image: placeholder},
}

var faq = []domain.FAQItem{
	{Question: "How do I make predictions?", Answer: "Open a live or upcoming match from the home screen, pick your prediction and submit it before the deadline."},
	{Question: "How are points calculated?", Answer: "Correct predictions earn points. Harder predictions earn more, and the value is shown with each question."},
	{Question: "When can I claim rewards?", Answer: "As soon as you reach the points threshold of a reward. The Rewards section lists every reward and its requirement."},
	{Question: "Why didn't I receive points for my prediction?", Answer: "Points are only awarded for correct predictions made before the deadline. Contact support if you think something is wrong."},
	{Question: "How do I check my prediction history?", Answer: "Your past predictions, results and points are listed in the History tab of your profile."},
	{Question: "Can I change my prediction after submitting?", Answer: "No. Once submitted a prediction is locked until the result is revealed."},
}

var moreMenu = []domain.MenuItem{
	{Label: "Stats & Analytics", Path: "/stats", Icon: "bar-chart"},
	{Label: "Notifications", Path: "/notifications", Icon: "bell"},
	{Label: "Settings", Path: "/settings", Icon: "settings"},
	{Label: "Help & Support", Path: "/help", Icon: "help-circle"},
	{Label: "Invite Friends", Path: "#", Icon: "users"},
	{Label: "About", Path: "#", Icon: "info"},
}
