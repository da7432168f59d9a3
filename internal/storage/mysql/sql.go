package mysql

const getBusinessSQL = `
SELECT location_title
FROM tbl_location
WHERE location_id = ?
`

// Deleted reviews never reach the pipeline; newest first so truncation keeps
// the most recent ones.
const listReviewsSQL = `
SELECT reviewId, displayName, starRating_number, comment, createTime
FROM tbl_location_review
WHERE location_id = ? AND (is_deleted = 0 OR is_deleted IS NULL)
ORDER BY createTime DESC, reviewId DESC
LIMIT ?
`
