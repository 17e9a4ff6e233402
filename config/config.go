package config

import (
  "time"
)

const (
  NATS_TWEETS_COLLECTED = "geotweets.collected"
)

const (
  ASYNQ_JOBS_COLLECTORS_PROCESS = "geotweets:collectors:process"
)

const (
  ASYNQ_QUEUE_COLLECTORS = "geotweets.collect"
)

const (
  LOCKS_TASKS_COLLECTORS_PROCESS = "geotweets:locks:tasks:collectors:%s"
  LOCKS_TASKS_EXPORTERS_APPLY    = "geotweets:locks:tasks:exporters:%s"
)

const (
  REDIS_KEY_TWEETS_COUNT = "geotweets:tweets:count:%s"
)

const (
  TASK_ACTION_COLLECT_SEARCH = 1
  TASK_ACTION_COLLECT_BBOX   = 2
  TASK_ACTION_COLLECT_USERS  = 3
)

const (
  TASK_STATUS_PENDING  = 1
  TASK_STATUS_RUNNING  = 2
  TASK_STATUS_FINISHED = 3
  TASK_STATUS_FAILED   = 4
)

const (
  SEARCH_TWEET_FIELDS = "attachments,author_id,conversation_id,created_at,entities,geo,id,in_reply_to_user_id,lang,public_metrics,possibly_sensitive,referenced_tweets,reply_settings,source,text,withheld"
  SEARCH_USER_FIELDS  = "created_at,description,entities,location,name,profile_image_url,protected,public_metrics,url,username,verified,withheld"
  SEARCH_MEDIA_FIELDS = "media_key,type,url"
  SEARCH_PLACE_FIELDS = "contained_within,country,country_code,full_name,geo,id,name,place_type"
  SEARCH_EXPANSIONS   = "attachments.media_keys,author_id,entities.mentions.username,geo.place_id,in_reply_to_user_id,referenced_tweets.id,referenced_tweets.id.author_id"
)

const (
  SEARCH_MAX_RESULTS_PER_CALL = 500
  SEARCH_SMALL_RESULT         = 500
)

const (
  ASYNQ_COLLECTORS_TIMEOUT = 6 * time.Hour
)
