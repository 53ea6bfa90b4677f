package contenthandlers

import "net/http"

// Handlers serves news, reviews, schedule, shorts and videos.
type Handlers interface {
	HandleListNews(w http.ResponseWriter, r *http.Request)
	HandleCreateNews(w http.ResponseWriter, r *http.Request)
	HandleDeleteNews(w http.ResponseWriter, r *http.Request)

	HandleListReviews(w http.ResponseWriter, r *http.Request)
	HandleCreateReview(w http.ResponseWriter, r *http.Request)
	HandleUpdateReview(w http.ResponseWriter, r *http.Request)
	HandleDeleteReview(w http.ResponseWriter, r *http.Request)

	HandleListSchedule(w http.ResponseWriter, r *http.Request)
	HandleCreateScheduleEvent(w http.ResponseWriter, r *http.Request)
	HandleDeleteScheduleEvent(w http.ResponseWriter, r *http.Request)

	HandleListShorts(w http.ResponseWriter, r *http.Request)
	HandleCreateShort(w http.ResponseWriter, r *http.Request)
	HandleDeleteShort(w http.ResponseWriter, r *http.Request)

	HandleListVideos(w http.ResponseWriter, r *http.Request)
	HandleCreateVideo(w http.ResponseWriter, r *http.Request)
	HandleDeleteVideo(w http.ResponseWriter, r *http.Request)
}
