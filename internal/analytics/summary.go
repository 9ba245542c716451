package analytics

import "time"

// Sample is one answered question's transcript and response latency.
// Timed is false when no latency could be measured, as for a recorded
// transcript without timestamps.
type Sample struct {
	Transcript   Transcript
	ResponseTime time.Duration
	Timed        bool
}

// Summary aggregates communication metrics over an interview. The response
// time fields cover timed answers only and are zero when there were none;
// Overall is then the communication score alone.
type Summary struct {
	Answers            int     `json:"answers"`
	TimedAnswers       int     `json:"timed_answers"`
	FillerWords        int     `json:"filler_words"`
	Communication      float64 `json:"communication_score"`
	ResponseTime       float64 `json:"response_time_score,omitempty"`
	Overall            float64 `json:"overall_communication_score"`
	AvgResponseSeconds float64 `json:"average_response_seconds,omitempty"`
}

// Summarize averages the samples. Zero samples give the zero Summary.
func Summarize(samples []Sample) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	var s Summary
	var comm, rt, secs float64
	for _, sm := range samples {
		s.FillerWords += sm.Transcript.FillerCount
		comm += sm.Transcript.CommunicationScore
		if sm.Timed {
			s.TimedAnswers++
			rt += ResponseTimeScore(sm.ResponseTime)
			secs += sm.ResponseTime.Seconds()
		}
	}
	n := float64(len(samples))
	s.Answers = len(samples)
	s.Communication = round(comm/n, 1)
	if s.TimedAnswers == 0 {
		s.Overall = s.Communication
		return s
	}
	t := float64(s.TimedAnswers)
	s.ResponseTime = round(rt/t, 1)
	s.Overall = round((comm/n+rt/t)/2, 1)
	s.AvgResponseSeconds = round(secs/t, 1)
	return s
}
