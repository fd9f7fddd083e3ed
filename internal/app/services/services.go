// Package services holds the business logic between the HTTP controllers and the repositories.
//
//   - AuthService: staff login and token verification
//   - StudentService: student profiles and per-student behavior summaries
//   - BehaviorTypeService: the behavior type vocabulary
//   - BehaviorService: the behavior log
//   - ImportService: bulk student import from xlsx/csv
//   - StatisticsService: dashboard aggregations
package services
